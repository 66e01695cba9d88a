package service

import (
	"context"
	"pressroom"
)

// Lightweight in-test mocks for the repository interfaces. Behavior is set
// per test via the *Fn fields; calls are recorded for assertions.

type profileUpdate struct {
	id                    int
	username, email, hash string
}

type mockUsers struct {
	CreateFn        func(u pressroom.User) (int, error)
	GetByIDFn       func(id int) (*pressroom.User, error)
	GetByEmailFn    func(email string) (*pressroom.User, error)
	GetByUsernameFn func(username string) (*pressroom.User, error)
	UpdateProfileFn func(id int, username, email, hash string) error
	ListFn          func() ([]pressroom.User, error)

	createCalls []pressroom.User
	updateCalls []profileUpdate
}

func (m *mockUsers) Create(_ context.Context, u pressroom.User) (int, error) {
	m.createCalls = append(m.createCalls, u)
	if m.CreateFn == nil {
		return 1, nil
	}
	return m.CreateFn(u)
}

func (m *mockUsers) GetByID(_ context.Context, id int) (*pressroom.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (*pressroom.User, error) {
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockUsers) GetByUsername(_ context.Context, username string) (*pressroom.User, error) {
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(username)
}

func (m *mockUsers) UpdateProfile(_ context.Context, id int, username, email, hash string) error {
	m.updateCalls = append(m.updateCalls, profileUpdate{id: id, username: username, email: email, hash: hash})
	if m.UpdateProfileFn == nil {
		return nil
	}
	return m.UpdateProfileFn(id, username, email, hash)
}

func (m *mockUsers) List(_ context.Context) ([]pressroom.User, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn()
}

type rebindCall struct {
	token, email string
}

type mockSessions struct {
	IssueFn   func(email string) (string, error)
	ResolveFn func(token string) (string, error)

	issueCalls   []string
	rebindCalls  []rebindCall
	deleteCalls  []string
	resolveCalls []string
}

func (m *mockSessions) Issue(_ context.Context, email string) (string, error) {
	m.issueCalls = append(m.issueCalls, email)
	if m.IssueFn == nil {
		return "tok-" + email, nil
	}
	return m.IssueFn(email)
}

func (m *mockSessions) Resolve(_ context.Context, token string) (string, error) {
	m.resolveCalls = append(m.resolveCalls, token)
	if m.ResolveFn == nil {
		return "", nil
	}
	return m.ResolveFn(token)
}

func (m *mockSessions) Rebind(_ context.Context, token, email string) error {
	m.rebindCalls = append(m.rebindCalls, rebindCall{token: token, email: email})
	return nil
}

func (m *mockSessions) Delete(_ context.Context, token string) error {
	m.deleteCalls = append(m.deleteCalls, token)
	return nil
}

type mockArticles struct {
	CreateFn       func(a pressroom.Article) (int, error)
	GetByIDFn      func(id int) (*pressroom.Article, error)
	GetAllFn       func() ([]pressroom.Article, error)
	ListByUserFn   func(userID int) ([]pressroom.Article, error)
	UpdateStatusFn func(id int, status string) (bool, error)
	DeleteFn       func(id int) (bool, error)

	createCalls []pressroom.Article
	deleteCalls []int
}

func (m *mockArticles) Create(_ context.Context, a pressroom.Article) (int, error) {
	m.createCalls = append(m.createCalls, a)
	if m.CreateFn == nil {
		return 1, nil
	}
	return m.CreateFn(a)
}

func (m *mockArticles) GetByID(_ context.Context, id int) (*pressroom.Article, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockArticles) GetAll(_ context.Context) ([]pressroom.Article, error) {
	if m.GetAllFn == nil {
		return nil, nil
	}
	return m.GetAllFn()
}

func (m *mockArticles) ListByUser(_ context.Context, userID int) ([]pressroom.Article, error) {
	if m.ListByUserFn == nil {
		return nil, nil
	}
	return m.ListByUserFn(userID)
}

func (m *mockArticles) UpdateStatus(_ context.Context, id int, status string) (bool, error) {
	if m.UpdateStatusFn == nil {
		return true, nil
	}
	return m.UpdateStatusFn(id, status)
}

func (m *mockArticles) Delete(_ context.Context, id int) (bool, error) {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.DeleteFn == nil {
		return true, nil
	}
	return m.DeleteFn(id)
}

// mockSanitizer records its input and returns a marker so tests can assert
// that content really went through the sanitizer.
type mockSanitizer struct {
	lastInput string
	out       string
}

func (m *mockSanitizer) Clean(html string) string {
	m.lastInput = html
	if m.out != "" {
		return m.out
	}
	return html
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"pressroom"

	"pressroom/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuthorization struct {
	registerID       int
	registerErr      error
	loginPrincipal   pressroom.Principal
	loginToken       string
	loginErr         error
	resolvePrincipal pressroom.Principal
	resolveErr       error
	logoutErr        error

	lastRegister      service.RegisterParams
	lastLoginEmail    string
	lastLoginPassword string
	lastResolveToken  string
	lastLogoutToken   string
}

func (m *mockAuthorization) Register(ctx context.Context, p service.RegisterParams) (int, error) {
	m.lastRegister = p
	return m.registerID, m.registerErr
}

func (m *mockAuthorization) Login(ctx context.Context, email, password string) (pressroom.Principal, string, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginPrincipal, m.loginToken, m.loginErr
}

func (m *mockAuthorization) Resolve(ctx context.Context, token string) (pressroom.Principal, error) {
	m.lastResolveToken = token
	return m.resolvePrincipal, m.resolveErr
}

func (m *mockAuthorization) Logout(ctx context.Context, token string) error {
	m.lastLogoutToken = token
	return m.logoutErr
}

type mockAccounts struct {
	updatePrincipal pressroom.Principal
	updateErr       error
	users           []pressroom.Principal
	listErr         error

	lastUpdatePrincipal pressroom.Principal
	lastUpdateToken     string
	lastPatch           service.ProfilePatch
	lastListPrincipal   pressroom.Principal
}

func (m *mockAccounts) UpdateProfile(ctx context.Context, principal pressroom.Principal, sessionToken string, patch service.ProfilePatch) (pressroom.Principal, error) {
	m.lastUpdatePrincipal = principal
	m.lastUpdateToken = sessionToken
	m.lastPatch = patch
	return m.updatePrincipal, m.updateErr
}

func (m *mockAccounts) ListUsers(ctx context.Context, principal pressroom.Principal) ([]pressroom.Principal, error) {
	m.lastListPrincipal = principal
	return m.users, m.listErr
}

type mockArticles struct {
	all       []pressroom.Article
	allErr    error
	one       pressroom.Article
	oneErr    error
	created   pressroom.Article
	createErr error
	mine      []pressroom.Article
	mineErr   error
	updated   pressroom.Article
	updateErr error
	deleteErr error

	lastDraft         service.ArticleDraft
	lastCreateBy      pressroom.Principal
	lastStatusID      int
	lastStatus        string
	lastDeleteID      int
	lastDeleteBy      pressroom.Principal
	lastMinePrincipal pressroom.Principal
}

func (m *mockArticles) GetAll(ctx context.Context) ([]pressroom.Article, error) {
	return m.all, m.allErr
}

func (m *mockArticles) GetByID(ctx context.Context, id int) (pressroom.Article, error) {
	return m.one, m.oneErr
}

func (m *mockArticles) Create(ctx context.Context, principal pressroom.Principal, draft service.ArticleDraft) (pressroom.Article, error) {
	m.lastCreateBy = principal
	m.lastDraft = draft
	return m.created, m.createErr
}

func (m *mockArticles) ListMine(ctx context.Context, principal pressroom.Principal) ([]pressroom.Article, error) {
	m.lastMinePrincipal = principal
	return m.mine, m.mineErr
}

func (m *mockArticles) UpdateStatus(ctx context.Context, principal pressroom.Principal, id int, status string) (pressroom.Article, error) {
	m.lastStatusID = id
	m.lastStatus = status
	return m.updated, m.updateErr
}

func (m *mockArticles) Delete(ctx context.Context, principal pressroom.Principal, id int) error {
	m.lastDeleteBy = principal
	m.lastDeleteID = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// withSession attaches a session cookie to the request.
func withSession(req *http.Request, token string) *http.Request {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	return req
}

// responseCookie digs a named cookie out of the recorded response.
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	res := w.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

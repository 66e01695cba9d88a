package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"pressroom"
	"testing"

	"pressroom/internal/service"
)

func alice() pressroom.Principal {
	return pressroom.Principal{ID: 3, Username: "alice", Email: "a@x.com", Role: "user"}
}

func TestAuthHandlers_LoginSuccessSetsSessionCookie(t *testing.T) {
	auth := &mockAuthorization{loginPrincipal: alice(), loginToken: "tok123"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"email":"a@x.com","password":"pw1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 3 || m["username"] != "alice" || m["role"] != "user" {
		t.Fatalf("unexpected principal payload: %v", m)
	}
	if _, ok := m["password_hash"]; ok {
		t.Fatalf("hash leaked into login response: %v", m)
	}

	cookie := responseCookie(w, sessionCookieName)
	if cookie == nil || cookie.Value != "tok123" {
		t.Fatalf("session cookie not set: %v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestAuthHandlers_LoginMissingFields(t *testing.T) {
	s := &service.Service{Authorization: &mockAuthorization{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":"a@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestAuthHandlers_LoginInvalidCredentials(t *testing.T) {
	auth := &mockAuthorization{loginErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":"a@x.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid credentials, got %d", w.Code)
	}
	if responseCookie(w, sessionCookieName) != nil {
		t.Fatalf("no session cookie may be set on failed login")
	}
}

func TestAuthHandlers_Register(t *testing.T) {
	auth := &mockAuthorization{registerID: 7}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// success
	body := bytes.NewBufferString(`{"username":"alice","email":"a@x.com","password":"pw1","role":"user"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "user registered successfully" {
		t.Fatalf("unexpected register body: %q", w.Body.String())
	}
	if auth.lastRegister.Username != "alice" || auth.lastRegister.Role != "user" {
		t.Fatalf("register params not passed through: %+v", auth.lastRegister)
	}

	// missing role → all fields required, collectively
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"username":"alice","email":"a@x.com","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing field, got %d", w.Code)
	}

	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["error"] != "all fields are required" {
		t.Fatalf("unexpected validation message: %v", m["error"])
	}
}

func TestAuthHandlers_RegisterDuplicateEmail(t *testing.T) {
	auth := &mockAuthorization{registerErr: service.ErrEmailTaken}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"username":"bob","email":"a@x.com","password":"pw2","role":"user"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	auth := &mockAuthorization{resolvePrincipal: alice()}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// anonymous → 401
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous /me: expected 401, got %d", w.Code)
	}

	// with session → 200 principal
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), "tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("/me status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["email"] != "a@x.com" {
		t.Fatalf("unexpected /me payload: %v", m)
	}
	if auth.lastResolveToken != "tok" {
		t.Fatalf("session token not passed to resolver: %q", auth.lastResolveToken)
	}
}

func TestAuthHandlers_UpdateProfile(t *testing.T) {
	auth := &mockAuthorization{resolvePrincipal: alice()}
	accounts := &mockAccounts{updatePrincipal: pressroom.Principal{ID: 3, Username: "alice2", Email: "a@x.com", Role: "user"}}
	s := &service.Service{Authorization: auth, Accounts: accounts}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/auth/update", bytes.NewBufferString(`{"username":"alice2"}`)), "tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d, body=%s", w.Code, w.Body.String())
	}
	if accounts.lastPatch.Username != "alice2" || accounts.lastPatch.Email != "" || accounts.lastPatch.Password != "" {
		t.Fatalf("patch not passed through: %+v", accounts.lastPatch)
	}
	if accounts.lastUpdateToken != "tok" {
		t.Fatalf("session token not forwarded for rebinding: %q", accounts.lastUpdateToken)
	}
	if accounts.lastUpdatePrincipal.ID != 3 {
		t.Fatalf("principal not forwarded: %+v", accounts.lastUpdatePrincipal)
	}
}

func TestAuthHandlers_UpdateProfileConflict(t *testing.T) {
	auth := &mockAuthorization{resolvePrincipal: alice()}
	accounts := &mockAccounts{updateErr: service.ErrUsernameTaken}
	s := &service.Service{Authorization: auth, Accounts: accounts}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/auth/update", bytes.NewBufferString(`{"username":"bob"}`)), "tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for username conflict, got %d", w.Code)
	}
}

func TestAuthHandlers_ListUsers(t *testing.T) {
	auth := &mockAuthorization{resolvePrincipal: alice()}

	// authenticated non-admin → 403
	s := &service.Service{Authorization: auth, Accounts: &mockAccounts{listErr: service.ErrForbidden}}
	r := newTestRouter(s)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/api/auth/users", nil), "tok"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", w.Code)
	}

	// admin → 200 with list
	admin := pressroom.Principal{ID: 1, Username: "root", Email: "r@x.com", Role: "admin"}
	s = &service.Service{
		Authorization: &mockAuthorization{resolvePrincipal: admin},
		Accounts:      &mockAccounts{users: []pressroom.Principal{admin, alice()}},
	}
	r = newTestRouter(s)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/api/auth/users", nil), "tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("admin list status=%d, body=%s", w.Code, w.Body.String())
	}
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	auth := &mockAuthorization{resolvePrincipal: alice()}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), "tok"))

	if w.Code != http.StatusOK {
		t.Fatalf("logout status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastLogoutToken != "tok" {
		t.Fatalf("logout did not invalidate the presented token: %q", auth.lastLogoutToken)
	}
	cookie := responseCookie(w, sessionCookieName)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("session cookie not cleared: %+v", cookie)
	}
}

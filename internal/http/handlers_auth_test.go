package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// mockAuthService is a test double for the staff login service.
type mockAuthService struct {
	beginLoginFunc    func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	completeLoginFunc func(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	getSessionFunc    func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	logoutFunc        func(ctx context.Context, sessionID string) error
}

func (m *mockAuthService) BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error) {
	if m.beginLoginFunc != nil {
		return m.beginLoginFunc(ctx, redirectURL)
	}
	return &service.BeginLoginResult{
		AuthURL: "https://idp.example.com/authorize?state=test-state",
		State:   "test-state",
		Nonce:   "test-nonce",
	}, nil
}

func (m *mockAuthService) CompleteLogin(
	ctx context.Context,
	input service.CompleteLoginInput,
) (*service.CompleteLoginResult, error) {
	if m.completeLoginFunc != nil {
		return m.completeLoginFunc(ctx, input)
	}
	return &service.CompleteLoginResult{
		Session: domainauth.Session{
			ID:        "session-1",
			UserID:    "staff-1",
			Email:     "staff@meridianbank.example",
			Role:      domainauth.RoleSupport,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}, nil
}

func (m *mockAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if m.getSessionFunc != nil {
		return m.getSessionFunc(ctx, sessionID)
	}
	return &domainauth.Session{
		ID:        sessionID,
		UserID:    "staff-1",
		Email:     "staff@meridianbank.example",
		Role:      domainauth.RoleSupport,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, sessionID)
	}
	return nil
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Login_SetsCookiesAndRedirects(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=/wires", nil)
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "https://idp.example.com/authorize")

	resp := w.Result()
	defer resp.Body.Close()
	cookies := resp.Cookies()
	require.Len(t, cookies, 3)
	assert.Equal(t, "test-state", cookieByName(cookies, "oauth_state").Value)
	assert.Equal(t, "test-nonce", cookieByName(cookies, "oauth_nonce").Value)
	assert.Equal(t, "/wires", cookieByName(cookies, "post_login_redirect").Value)
}

func TestAuthHandlers_Login_RejectsAbsoluteRedirect(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example.com/", nil)
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	redirect := cookieByName(resp.Cookies(), "post_login_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/", redirect.Value)
}

func TestAuthHandlers_Callback_Success(t *testing.T) {
	var captured service.CompleteLoginInput
	svc := &mockAuthService{
		completeLoginFunc: func(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			captured = input
			return &service.CompleteLoginResult{
				Session: domainauth.Session{ID: "session-9", ExpiresAt: time.Now().Add(time.Hour)},
			}, nil
		},
	}
	handlers := &AuthHandlers{Svc: svc, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=test-state", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "test-nonce"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/wires"})
	w := httptest.NewRecorder()
	handlers.Callback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/wires", w.Header().Get("Location"))
	assert.Equal(t, service.CompleteLoginInput{Code: "abc", State: "test-state", Nonce: "test-nonce"}, captured)

	resp := w.Result()
	defer resp.Body.Close()
	session := cookieByName(resp.Cookies(), "session_id")
	require.NotNil(t, session)
	assert.Equal(t, "session-9", session.Value)
}

func TestAuthHandlers_Callback_StateMismatch(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	w := httptest.NewRecorder()
	handlers.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body["error"])
}

func TestAuthHandlers_Callback_MissingCode(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}, Logger: discardLogger()}

	w := httptest.NewRecorder()
	handlers.Callback(w, httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Logout_ClearsSession(t *testing.T) {
	loggedOut := ""
	svc := &mockAuthService{
		logoutFunc: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	handlers := &AuthHandlers{Svc: svc, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-1"})
	w := httptest.NewRecorder()
	handlers.Logout(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "session-1", loggedOut)

	resp := w.Result()
	defer resp.Body.Close()
	session := cookieByName(resp.Cookies(), "session_id")
	require.NotNil(t, session)
	assert.Equal(t, -1, session.MaxAge)
}

func TestAuthHandlers_Logout_JSONAccept(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	handlers.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"signed_out"}`, w.Body.String())
}

func TestAuthHandlers_Status_Unauthenticated(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}, Logger: discardLogger()}

	w := httptest.NewRecorder()
	handlers.Status(w, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])
}

func TestAuthHandlers_Status_ExpiredSessionClearsCookie(t *testing.T) {
	svc := &mockAuthService{
		getSessionFunc: func(_ context.Context, _ string) (*domainauth.Session, error) {
			return nil, service.ErrSessionExpired
		},
	}
	handlers := &AuthHandlers{Svc: svc, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-1"})
	w := httptest.NewRecorder()
	handlers.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])

	resp := w.Result()
	defer resp.Body.Close()
	session := cookieByName(resp.Cookies(), "session_id")
	require.NotNil(t, session)
	assert.Equal(t, -1, session.MaxAge)
}

func TestAuthHandlers_Status_Authenticated(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-1"})
	w := httptest.NewRecorder()
	handlers.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, "staff-1", body.User.ID)
	assert.Equal(t, "staff@meridianbank.example", body.User.Email)
}

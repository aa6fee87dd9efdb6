package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
)

// stubGate is a test double for the bearer-credential gate.
type stubGate struct {
	authCtx domainauth.AuthContext
	authErr *domainauth.AuthError
}

func (g *stubGate) VerifyRequest(_ context.Context, _ *http.Request) (domainauth.AuthContext, *domainauth.AuthError) {
	return g.authCtx, g.authErr
}

func decodeAuthFailure(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAdmin_MissingCredential(t *testing.T) {
	gate := &stubGate{authErr: domainauth.MissingCredential()}
	handler := RequireAdmin(gate)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run on gate failure")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeAuthFailure(t, w)
	assert.Equal(t, true, body["needs_reauth"])
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	gate := &stubGate{authErr: domainauth.InvalidToken(errors.New("garbled"))}
	handler := RequireAdmin(gate)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run on gate failure")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeAuthFailure(t, w)
	assert.Equal(t, "Invalid token.", body["error"])
	assert.Equal(t, false, body["needs_reauth"])
}

func TestRequireAdmin_SessionExpired(t *testing.T) {
	gate := &stubGate{authErr: domainauth.SessionExpired(errors.New("token has expired"))}
	handler := RequireAdmin(gate)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run on gate failure")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeAuthFailure(t, w)
	assert.Equal(t, "Session expired. Please log in again.", body["error"])
	assert.Equal(t, true, body["needs_reauth"])
}

func TestRequireAdmin_NotAdmin(t *testing.T) {
	gate := &stubGate{authErr: domainauth.NotAdmin(nil)}
	handler := RequireAdmin(gate)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run on gate failure")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeAuthFailure(t, w)
	assert.Equal(t, "Access denied. Admin privileges required.", body["error"])
	assert.Equal(t, false, body["needs_reauth"])
}

func TestRequireAdmin_InternalError(t *testing.T) {
	gate := &stubGate{authErr: domainauth.Internal(errors.New("boom"))}
	handler := RequireAdmin(gate)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run on gate failure")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeAuthFailure(t, w)
	assert.Equal(t, "Authentication verification failed", body["error"])
	assert.Equal(t, false, body["needs_reauth"])
}

func TestRequireAdmin_SuccessAttachesIdentity(t *testing.T) {
	gate := &stubGate{authCtx: domainauth.AuthContext{
		AdminID: "admin-7",
		Email:   "ops@meridianbank.example",
		Profile: domainauth.AdminProfile{ID: "admin-7", Role: domainauth.RoleAdmin},
	}}

	var seen domainauth.AuthContext
	handler := RequireAdmin(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := GetAuthContext(r.Context())
		require.True(t, ok)
		seen = ac
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "admin-7", seen.AdminID)
	assert.Equal(t, "ops@meridianbank.example", seen.Email)
}

func TestRecover_PanicReturns500(t *testing.T) {
	handler := Recover(discardLogger())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("handler exploded")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type recordingSink struct {
	counts  map[string]map[string]string
	timings map[string]map[string]string
}

func (s *recordingSink) Count(name string, _ int64, tags map[string]string) {
	if s.counts == nil {
		s.counts = map[string]map[string]string{}
	}
	s.counts[name] = tags
}

func (s *recordingSink) Gauge(string, float64, map[string]string) {}

func (s *recordingSink) Timing(name string, _ time.Duration, tags map[string]string) {
	if s.timings == nil {
		s.timings = map[string]map[string]string{}
	}
	s.timings[name] = tags
}

func TestMetrics_TagsMethodAndStatus(t *testing.T) {
	sink := &recordingSink{}
	handler := Metrics(sink)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/wallets", nil))

	require.Contains(t, sink.counts, "http.request")
	assert.Equal(t, "POST", sink.counts["http.request"]["method"])
	assert.Equal(t, "404", sink.counts["http.request"]["status"])
	require.Contains(t, sink.timings, "http.duration")
	assert.Equal(t, "404", sink.timings["http.duration"]["status"])
}

func TestLogging_PreservesStatus(t *testing.T) {
	handler := Logging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

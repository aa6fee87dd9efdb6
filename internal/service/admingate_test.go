package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	mocks "github.com/meridianbank/bankadmin-api/internal/mocks/auth"
)

// signTestToken builds a syntactically valid JWT for the given claims.
// The gate never checks the signature, so any key works.
func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func newTestGate(identity *mocks.MockIdentityLookup, roster *mocks.MockAdminRoster) *AdminGate {
	return NewAdminGate(AdminGateOptions{Identity: identity, Roster: roster})
}

func seededGate(t *testing.T) (*AdminGate, string) {
	t.Helper()
	identity := mocks.NewMockIdentityLookup()
	identity.Users["user-42"] = domainauth.User{
		ID:        "user-42",
		Email:     "a@x.com",
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	roster := mocks.NewMockAdminRoster()
	roster.Profiles["user-42"] = domainauth.AdminProfile{
		ID:    "user-42",
		Email: "a@x.com",
		Role:  domainauth.RoleSupport,
	}
	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	return newTestGate(identity, roster), token
}

func TestAdminGate_MissingCredential(t *testing.T) {
	gate := newTestGate(mocks.NewMockIdentityLookup(), mocks.NewMockAdminRoster())
	ctx := context.Background()

	cases := []struct {
		name   string
		verify func() (domainauth.AuthContext, *domainauth.AuthError)
	}{
		{"empty string", func() (domainauth.AuthContext, *domainauth.AuthError) {
			return gate.VerifyToken(ctx, "")
		}},
		{"whitespace only", func() (domainauth.AuthContext, *domainauth.AuthError) {
			return gate.VerifyToken(ctx, "   ")
		}},
		{"nil request", func() (domainauth.AuthContext, *domainauth.AuthError) {
			return gate.VerifyRequest(ctx, nil)
		}},
		{"request without header", func() (domainauth.AuthContext, *domainauth.AuthError) {
			return gate.VerifyRequest(ctx, httptest.NewRequest(http.MethodPost, "/", nil))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, authErr := tc.verify()
			require.NotNil(t, authErr)
			assert.Equal(t, domainauth.KindMissingCredential, authErr.Kind)
			assert.Equal(t, http.StatusUnauthorized, authErr.Status())
			assert.True(t, authErr.NeedsReauth())
		})
	}
}

func TestAdminGate_BearerPrefixEquivalence(t *testing.T) {
	gate, token := seededGate(t)
	ctx := context.Background()

	withPrefix, errWith := gate.VerifyToken(ctx, "Bearer "+token)
	withoutPrefix, errWithout := gate.VerifyToken(ctx, token)

	require.Nil(t, errWith)
	require.Nil(t, errWithout)
	assert.Equal(t, withPrefix, withoutPrefix)

	// The header path behaves the same as the raw-string path.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	fromRequest, reqErr := gate.VerifyRequest(ctx, req)
	require.Nil(t, reqErr)
	assert.Equal(t, withPrefix, fromRequest)
}

func TestAdminGate_InvalidToken(t *testing.T) {
	gate := newTestGate(mocks.NewMockIdentityLookup(), mocks.NewMockAdminRoster())
	ctx := context.Background()

	noSubject := signTestToken(t, jwt.MapClaims{"aud": "bankadmin"})

	cases := []struct {
		name       string
		credential string
	}{
		{"not a jwt", "garbage"},
		{"two segments", "Bearer abc.def"},
		{"bad base64 payload", "Bearer a.!!!.c"},
		{"missing subject claim", noSubject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, authErr := gate.VerifyToken(ctx, tc.credential)
			require.NotNil(t, authErr)
			assert.Equal(t, domainauth.KindInvalidToken, authErr.Kind)
			assert.Equal(t, http.StatusUnauthorized, authErr.Status())
			assert.False(t, authErr.NeedsReauth())
			assert.Equal(t, "Invalid token.", authErr.Message)
		})
	}
}

func TestAdminGate_IdentityLookupFailures(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	ctx := context.Background()

	cases := []struct {
		name        string
		lookupErr   error
		wantKind    domainauth.ErrKind
		wantReauth  bool
		wantMessage string
	}{
		{
			name:        "provider says expired",
			lookupErr:   errors.New("JWT token has expired"),
			wantKind:    domainauth.KindSessionExpired,
			wantReauth:  true,
			wantMessage: "Session expired. Please log in again.",
		},
		{
			name:        "provider says invalid",
			lookupErr:   errors.New("invalid refresh token"),
			wantKind:    domainauth.KindSessionExpired,
			wantReauth:  true,
			wantMessage: "Session expired. Please log in again.",
		},
		{
			name:        "subject unknown to provider",
			lookupErr:   mocks.ErrNotFound,
			wantKind:    domainauth.KindInvalidToken,
			wantReauth:  false,
			wantMessage: "Invalid token.",
		},
		{
			name:        "provider outage",
			lookupErr:   errors.New("connection refused"),
			wantKind:    domainauth.KindInvalidToken,
			wantReauth:  false,
			wantMessage: "Invalid token.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := mocks.NewMockIdentityLookup()
			identity.GetUserByIDFunc = func(context.Context, string) (domainauth.User, error) {
				return domainauth.User{}, tc.lookupErr
			}
			roster := mocks.NewMockAdminRoster()
			gate := newTestGate(identity, roster)

			_, authErr := gate.VerifyToken(ctx, token)
			require.NotNil(t, authErr)
			assert.Equal(t, tc.wantKind, authErr.Kind)
			assert.Equal(t, http.StatusUnauthorized, authErr.Status())
			assert.Equal(t, tc.wantReauth, authErr.NeedsReauth())
			assert.Equal(t, tc.wantMessage, authErr.Message)

			// The roster is never consulted when identity resolution fails.
			assert.Zero(t, roster.Calls)
		})
	}
}

func TestAdminGate_NotAdmin(t *testing.T) {
	identity := mocks.NewMockIdentityLookup()
	identity.Users["user-42"] = domainauth.User{ID: "user-42", Email: "a@x.com"}
	roster := mocks.NewMockAdminRoster() // empty roster
	gate := newTestGate(identity, roster)

	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	_, authErr := gate.VerifyToken(context.Background(), token)

	require.NotNil(t, authErr)
	assert.Equal(t, domainauth.KindNotAdmin, authErr.Kind)
	assert.Equal(t, http.StatusForbidden, authErr.Status())
	assert.False(t, authErr.NeedsReauth())
	assert.Equal(t, "Access denied. Admin privileges required.", authErr.Message)
}

func TestAdminGate_RosterLookupErrorIsNotAdmin(t *testing.T) {
	identity := mocks.NewMockIdentityLookup()
	identity.Users["user-42"] = domainauth.User{ID: "user-42", Email: "a@x.com"}
	roster := mocks.NewMockAdminRoster()
	roster.FindByIDFunc = func(context.Context, string) (domainauth.AdminProfile, error) {
		return domainauth.AdminProfile{}, errors.New("roster query failed")
	}
	gate := newTestGate(identity, roster)

	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	_, authErr := gate.VerifyToken(context.Background(), token)

	require.NotNil(t, authErr)
	assert.Equal(t, domainauth.KindNotAdmin, authErr.Kind)
	assert.Equal(t, http.StatusForbidden, authErr.Status())
}

func TestAdminGate_Success(t *testing.T) {
	gate, token := seededGate(t)

	authCtx, authErr := gate.VerifyToken(context.Background(), "Bearer "+token)

	require.Nil(t, authErr)
	assert.Equal(t, "user-42", authCtx.AdminID)
	assert.Equal(t, "a@x.com", authCtx.Email)
	assert.Equal(t, "user-42", authCtx.User.ID)
	assert.Equal(t, "user-42", authCtx.Profile.ID)
	assert.Equal(t, domainauth.RoleSupport, authCtx.Profile.Role)
}

func TestAdminGate_Idempotence(t *testing.T) {
	gate, token := seededGate(t)
	ctx := context.Background()

	first, firstErr := gate.VerifyToken(ctx, "Bearer "+token)
	second, secondErr := gate.VerifyToken(ctx, "Bearer "+token)

	require.Nil(t, firstErr)
	require.Nil(t, secondErr)
	assert.Equal(t, first, second)
}

func TestAdminGate_PanicRecovered(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	ctx := context.Background()

	t.Run("identity lookup panics", func(t *testing.T) {
		identity := mocks.NewMockIdentityLookup()
		identity.GetUserByIDFunc = func(context.Context, string) (domainauth.User, error) {
			panic("identity store blew up")
		}
		gate := newTestGate(identity, mocks.NewMockAdminRoster())

		authCtx, authErr := gate.VerifyToken(ctx, token)
		require.NotNil(t, authErr)
		assert.Equal(t, domainauth.KindInternal, authErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, authErr.Status())
		assert.False(t, authErr.NeedsReauth())
		assert.Equal(t, "Authentication verification failed", authErr.Message)
		assert.Empty(t, authCtx.AdminID)
	})

	t.Run("roster lookup panics", func(t *testing.T) {
		identity := mocks.NewMockIdentityLookup()
		identity.Users["user-42"] = domainauth.User{ID: "user-42", Email: "a@x.com"}
		roster := mocks.NewMockAdminRoster()
		roster.FindByIDFunc = func(context.Context, string) (domainauth.AdminProfile, error) {
			panic("roster store blew up")
		}
		gate := newTestGate(identity, roster)

		_, authErr := gate.VerifyToken(ctx, token)
		require.NotNil(t, authErr)
		assert.Equal(t, domainauth.KindInternal, authErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, authErr.Status())
	})
}

func TestAdminGate_EndToEnd(t *testing.T) {
	identity := mocks.NewMockIdentityLookup()
	identity.Users["user-42"] = domainauth.User{ID: "user-42", Email: "a@x.com"}
	roster := mocks.NewMockAdminRoster()
	roster.Profiles["user-42"] = domainauth.AdminProfile{ID: "user-42", Role: domainauth.RoleSupport}
	gate := newTestGate(identity, roster)

	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	authCtx, authErr := gate.VerifyRequest(context.Background(), req)

	require.Nil(t, authErr)
	assert.Equal(t, "user-42", authCtx.AdminID)
	assert.Equal(t, "a@x.com", authCtx.Email)
	assert.Equal(t, domainauth.User{ID: "user-42", Email: "a@x.com"}, authCtx.User)
	assert.Equal(t, domainauth.AdminProfile{ID: "user-42", Role: domainauth.RoleSupport}, authCtx.Profile)
}

type countingSink struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (s *countingSink) Count(name string, value int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = make(map[string]int64)
	}
	s.counts[name+":"+tags["outcome"]] += value
}

func TestAdminGate_EmitsOutcomeMetrics(t *testing.T) {
	identity := mocks.NewMockIdentityLookup()
	identity.Users["user-42"] = domainauth.User{ID: "user-42", Email: "a@x.com"}
	roster := mocks.NewMockAdminRoster()
	roster.Profiles["user-42"] = domainauth.AdminProfile{ID: "user-42", Role: domainauth.RoleAdmin}

	sink := &countingSink{}
	gate := NewAdminGate(AdminGateOptions{Identity: identity, Roster: roster, Metrics: sink})
	ctx := context.Background()

	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	_, _ = gate.VerifyToken(ctx, token)
	_, _ = gate.VerifyToken(ctx, "")
	_, _ = gate.VerifyToken(ctx, "garbage")

	assert.Equal(t, int64(1), sink.counts["admin_gate.verify:success"])
	assert.Equal(t, int64(1), sink.counts["admin_gate.verify:missing_credential"])
	assert.Equal(t, int64(1), sink.counts["admin_gate.verify:invalid_token"])
}

func TestDecodeCredential_ExpiryClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signTestToken(t, jwt.MapClaims{"sub": "user-42", "exp": exp.Unix()})

	decoded, authErr := decodeCredential(token)
	require.Nil(t, authErr)
	assert.Equal(t, "user-42", decoded.Subject)
	assert.WithinDuration(t, exp, decoded.ExpiresAt, time.Second)

	noExp := signTestToken(t, jwt.MapClaims{"sub": "user-42"})
	decoded, authErr = decodeCredential(noExp)
	require.Nil(t, authErr)
	assert.True(t, decoded.ExpiresAt.IsZero())
}

func TestDecodeCredential_StripsSinglePrefix(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"sub": "user-42"})

	// Exactly one prefix is stripped; a doubled prefix leaves a non-token.
	_, authErr := decodeCredential("Bearer Bearer " + token)
	require.NotNil(t, authErr)
	assert.Equal(t, domainauth.KindInvalidToken, authErr.Kind)

	// A bare prefix with no token behind it decodes to nothing.
	_, authErr = decodeCredential("Bearer ")
	require.NotNil(t, authErr)
}

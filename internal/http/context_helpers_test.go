package httpx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
)

func TestAuthContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := GetAuthContext(ctx)
	assert.False(t, ok)

	ac := domainauth.AuthContext{AdminID: "admin-1", Email: "ops@meridianbank.example"}
	ctx = SetAuthContext(ctx, ac)

	got, ok := GetAuthContext(ctx)
	require.True(t, ok)
	assert.Equal(t, ac, got)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := GetSessionFromContext(ctx)
	assert.False(t, ok)

	session := &domainauth.Session{ID: "session-1", ExpiresAt: time.Now().Add(time.Hour)}
	ctx = SetSessionInContext(ctx, session)

	got, ok := GetSessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, session, got)
}

func TestSetSessionInContext_NilIsNoOp(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, SetSessionInContext(ctx, nil))
}

package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
)

// authContextKey is an unexported context key type to avoid collisions.
// Centralized here so all handlers/middleware use the same key.
type authContextKey struct{}

type sessionKey struct{}

// SetAuthContext returns a child context carrying the verified admin identity.
func SetAuthContext(ctx context.Context, ac domainauth.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

// GetAuthContext returns the verified admin identity and whether it is present.
// It is only present on requests that passed the RequireAdmin middleware.
func GetAuthContext(ctx context.Context) (domainauth.AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey{}).(domainauth.AuthContext)
	return ac, ok
}

// requireActor extracts the verified admin identity placed on the context by
// RequireAdmin. Mutating handlers call it to attribute audit entries; reaching
// it without the middleware is a wiring bug, reported as a 500.
func requireActor(w http.ResponseWriter, r *http.Request) (domainauth.AuthContext, bool) {
	ac, ok := GetAuthContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "missing_identity",
			Err:     errors.New("request reached handler without verified identity"),
		})
		return domainauth.AuthContext{}, false
	}
	return ac, true
}

// SetSessionInContext returns a child context that carries the given staff session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext retrieves the staff session from the request context.
func GetSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

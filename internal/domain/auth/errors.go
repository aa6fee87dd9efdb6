package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrKind is the closed set of admin gate failure categories.
type ErrKind string

const (
	// KindMissingCredential means no credential was supplied at all.
	KindMissingCredential ErrKind = "missing_credential"
	// KindInvalidToken means the credential was present but malformed, or
	// the subject did not resolve for a reason other than expiry.
	KindInvalidToken ErrKind = "invalid_token"
	// KindSessionExpired means the identity provider signalled expiry or
	// invalidation of the session behind the credential.
	KindSessionExpired ErrKind = "session_expired"
	// KindNotAdmin means the session is valid but the subject has no admin
	// roster entry.
	KindNotAdmin ErrKind = "not_admin"
	// KindInternal means an unexpected failure during verification.
	KindInternal ErrKind = "internal"
)

// AuthError is the failure half of the gate's discriminated result. Every
// failure path of the admin gate is converted to one of these before
// returning; handlers translate it directly into an HTTP response.
type AuthError struct {
	Kind    ErrKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AuthError) Unwrap() error { return e.Cause }

// Status maps the failure kind to its HTTP status code.
func (e *AuthError) Status() int {
	switch e.Kind {
	case KindNotAdmin:
		return http.StatusForbidden
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}

// NeedsReauth reports whether the caller should be prompted to log in
// again. True only for a missing credential or a provider-signalled expiry;
// a malformed token or a missing roster entry is not fixed by re-login.
func (e *AuthError) NeedsReauth() bool {
	return e.Kind == KindMissingCredential || e.Kind == KindSessionExpired
}

// MissingCredential creates the failure for an absent credential.
func MissingCredential() *AuthError {
	return &AuthError{Kind: KindMissingCredential, Message: "Missing authorization token."}
}

// InvalidToken creates the failure for a malformed or unresolvable token.
func InvalidToken(cause error) *AuthError {
	return &AuthError{Kind: KindInvalidToken, Message: "Invalid token.", Cause: cause}
}

// SessionExpired creates the failure for a provider-signalled expiry.
func SessionExpired(cause error) *AuthError {
	return &AuthError{Kind: KindSessionExpired, Message: "Session expired. Please log in again.", Cause: cause}
}

// NotAdmin creates the failure for a valid session without a roster entry.
func NotAdmin(cause error) *AuthError {
	return &AuthError{Kind: KindNotAdmin, Message: "Access denied. Admin privileges required.", Cause: cause}
}

// Internal creates the failure for an unexpected verification error.
func Internal(cause error) *AuthError {
	return &AuthError{Kind: KindInternal, Message: "Authentication verification failed", Cause: cause}
}

// AsAuthError extracts an *AuthError from an error chain.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsGuest(t *testing.T) {
	assert.True(t, Session{Role: RoleGuest}.IsGuest())
	assert.False(t, Session{Role: RoleAdmin}.IsGuest())
	assert.False(t, Session{Role: RoleSupport}.IsGuest())
}

func TestDecodedIdentity_ZeroExpiry(t *testing.T) {
	d := DecodedIdentity{Subject: "user-42"}
	assert.True(t, d.ExpiresAt.IsZero())
	assert.Equal(t, "user-42", d.Subject)
}

func TestAuthContext_CarriesRosterAndIdentity(t *testing.T) {
	now := time.Now()
	ctx := AuthContext{
		AdminID: "user-42",
		Email:   "a@x.com",
		User:    User{ID: "user-42", Email: "a@x.com", CreatedAt: now},
		Profile: AdminProfile{ID: "user-42", Role: RoleSupport},
	}

	assert.Equal(t, ctx.User.ID, ctx.AdminID)
	assert.Equal(t, ctx.User.Email, ctx.Email)
	assert.Equal(t, RoleSupport, ctx.Profile.Role)
}

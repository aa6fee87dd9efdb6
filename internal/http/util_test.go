package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 50, wantOffset: 0},
		{name: "explicit", query: "?limit=10&offset=20", wantLimit: 10, wantOffset: 20},
		{name: "clamped to max", query: "?limit=9999", wantLimit: 100, wantOffset: 0},
		{name: "negative values", query: "?limit=-5&offset=-1", wantLimit: 1, wantOffset: 0},
		{name: "non-numeric ignored", query: "?limit=abc&offset=xyz", wantLimit: 50, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			limit, offset := ParseLimitOffset(r, 50, 100)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestOptionalQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?account_id=acct-1&empty=%20%20", nil)

	v := optionalQuery(r, "account_id")
	if assert.NotNil(t, v) {
		assert.Equal(t, "acct-1", *v)
	}
	assert.Nil(t, optionalQuery(r, "empty"))
	assert.Nil(t, optionalQuery(r, "missing"))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, isValidationError(errors.New("holder_name cannot be empty")))
	assert.True(t, isValidationError(errors.New("decision must be approved or rejected")))
	assert.True(t, isValidationError(errors.New("role must be admin or support")))
	assert.False(t, isValidationError(errors.New("connection refused")))
	assert.False(t, isValidationError(nil))
}

func TestSafeRedirectPath(t *testing.T) {
	assert.Equal(t, "/wires", safeRedirectPath("/wires"))
	assert.Equal(t, "/", safeRedirectPath(""))
	assert.Equal(t, "/", safeRedirectPath("https://evil.example.com/"))
	assert.Equal(t, "/", safeRedirectPath("//evil.example.com/"))
	assert.Equal(t, "/", safeRedirectPath("relative-no-slash"))
}

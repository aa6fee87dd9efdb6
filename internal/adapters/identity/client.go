package identity

// Package identity provides an HTTP client for the identity provider's
// admin user API. The provider is the system of record for customer and
// staff accounts; this service only reads from it.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
)

// ErrUserNotFound is returned when the provider has no account for the id.
var ErrUserNotFound = errors.New("identity: user not found")

// ProviderError carries the provider's HTTP status and message so callers
// can classify failures (expired session, revoked token, outage).
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("identity provider returned status %d", e.StatusCode)
	}
	return e.Message
}

// Config holds configuration for the identity provider client.
type Config struct {
	// BaseURL is the root of the provider's admin API, no trailing slash.
	BaseURL string
	// ServiceKey authenticates server-to-server calls. Required.
	ServiceKey string
	// Timeout bounds each lookup call. Defaults to 10s when zero.
	Timeout time.Duration
	// HTTPClient is optional; a default client with Timeout is used when nil.
	HTTPClient *http.Client
}

// Client implements ports.IdentityLookup over the provider's admin API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates an identity provider client from Config.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("identity: base URL is required")
	}
	if cfg.ServiceKey == "" {
		return nil, errors.New("identity: service key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    base,
		serviceKey: cfg.ServiceKey,
		httpClient: httpClient,
	}, nil
}

// GetUserByID fetches the canonical account record for id.
// Provider failures come back as *ProviderError with the provider's own
// message preserved, so the caller can distinguish a revoked account from
// an outage.
func (c *Client) GetUserByID(ctx context.Context, id string) (domainauth.User, error) {
	if strings.TrimSpace(id) == "" {
		return domainauth.User{}, errors.New("identity: user id is required")
	}

	endpoint := c.baseURL + "/admin/v1/users/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domainauth.User{}, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainauth.User{}, fmt.Errorf("identity: lookup user: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domainauth.User{}, fmt.Errorf("identity: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var user domainauth.User
		if uerr := json.Unmarshal(body, &user); uerr != nil {
			return domainauth.User{}, fmt.Errorf("identity: decode user: %w", uerr)
		}
		if user.ID == "" {
			return domainauth.User{}, ErrUserNotFound
		}
		return user, nil
	case resp.StatusCode == http.StatusNotFound:
		return domainauth.User{}, ErrUserNotFound
	default:
		return domainauth.User{}, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    providerMessage(body),
		}
	}
}

// providerMessage pulls a human-readable message out of a provider error
// body. Providers vary in shape, so several common keys are tried.
func providerMessage(body []byte) string {
	var payload struct {
		Message  string `json:"message"`
		Msg      string `json:"msg"`
		ErrorStr string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Message, payload.Msg, payload.ErrorStr} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(body))
}

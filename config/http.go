package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://backoffice.example.com").
	// Used for generating absolute URLs in login redirects.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// ReadTimeoutSeconds and WriteTimeoutSeconds bound request handling.
	ReadTimeoutSeconds  int `env:"HTTP_READ_TIMEOUT_SECONDS"  envDefault:"30"`
	WriteTimeoutSeconds int `env:"HTTP_WRITE_TIMEOUT_SECONDS" envDefault:"30"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.ReadTimeoutSeconds <= 0 {
		h.ReadTimeoutSeconds = 30
	}
	if h.WriteTimeoutSeconds <= 0 {
		h.WriteTimeoutSeconds = 30
	}
}

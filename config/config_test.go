package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AuthMode
		wantErr bool
	}{
		{name: "oauth", input: "oauth", want: AuthModeOAuth},
		{name: "mock", input: "mock", want: AuthModeMock},
		{name: "uppercase normalized", input: "OAuth", want: AuthModeOAuth},
		{name: "unknown rejected", input: "saml", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		Identity: IdentityProviderConfig{
			BaseURL:        "  https://identity.example.com/ ",
			ServiceKey:     " key ",
			TimeoutSeconds: 0,
		},
	}

	cfg.Sanitize()

	assert.Equal(t, "https://identity.example.com", cfg.Identity.BaseURL)
	assert.Equal(t, "key", cfg.Identity.ServiceKey)
	assert.Equal(t, 10, cfg.Identity.TimeoutSeconds)
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{ReadTimeoutSeconds: -1, WriteTimeoutSeconds: 0}
	cfg.Sanitize()
	assert.Equal(t, 30, cfg.ReadTimeoutSeconds)
	assert.Equal(t, 30, cfg.WriteTimeoutSeconds)
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	cfg.Sanitize()
	assert.False(t, cfg.IsEnabled())

	cfg = ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "127.0.0.1:8125"}
	cfg.Sanitize()
	assert.True(t, cfg.IsEnabled())
}

func TestRetentionConfig_Sanitize(t *testing.T) {
	cfg := RetentionConfig{MaxAgeDays: 0, IntervalMinutes: -5}
	cfg.Sanitize()
	assert.Equal(t, 365, cfg.MaxAgeDays)
	assert.Equal(t, 60, cfg.IntervalMinutes)
}

func TestAppConfig_Sanitize_DevModeFromAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

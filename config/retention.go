package config

// RetentionConfig controls the background sweeper that purges old audit
// trail entries. Disabled by default; most deployments archive the audit
// log externally before enabling in-database purging.
type RetentionConfig struct {
	// Enabled turns the audit retention sweeper on.
	Enabled bool `env:"AUDIT_RETENTION_ENABLED" envDefault:"false"`

	// MaxAgeDays is the age past which audit entries are purged.
	MaxAgeDays int `env:"AUDIT_RETENTION_MAX_AGE_DAYS" envDefault:"365"`

	// IntervalMinutes is how often the sweeper runs.
	IntervalMinutes int `env:"AUDIT_RETENTION_INTERVAL_MINUTES" envDefault:"60"`
}

// Sanitize applies guardrails to retention configuration values.
func (r *RetentionConfig) Sanitize() {
	if r.MaxAgeDays <= 0 {
		r.MaxAgeDays = 365
	}
	if r.IntervalMinutes <= 0 {
		r.IntervalMinutes = 60
	}
}

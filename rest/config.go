package rest

import (
	"time"

	"github.com/kbukum/restclient/validation"
)

// Config holds client settings loaded from configuration.
type Config struct {
	// Timeout overrides the process-wide request timeout when non-zero.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// Headers are sent with every request. Keys are matched case-insensitively.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// RequestID adds an X-Request-Id header to every request.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

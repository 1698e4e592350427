package discovery

import (
	"strings"

	"github.com/kbukum/restclient/validation"
)

// Supported provider names.
const (
	ProviderStatic = "static"
	ProviderConsul = "consul"
)

// Config selects and configures the discovery backend.
type Config struct {
	// Provider selects the backend: "static" or "consul".
	Provider string `yaml:"provider" mapstructure:"provider" validate:"oneof=static consul"`

	// Consul configures the consul backend.
	Consul ConsulConfig `yaml:"consul" mapstructure:"consul"`

	// Endpoints lists addresses for the static backend.
	Endpoints []StaticEndpoint `yaml:"endpoints" mapstructure:"endpoints" validate:"dive"`
}

// ConsulConfig holds Consul connection settings.
type ConsulConfig struct {
	// Address is the Consul agent address (host:port).
	Address string `yaml:"address" mapstructure:"address" validate:"omitempty,hostname_port"`

	// Scheme is the URI scheme used to reach the agent.
	Scheme string `yaml:"scheme" mapstructure:"scheme" validate:"omitempty,oneof=http https"`

	// Datacenter to query; empty uses the agent's datacenter.
	Datacenter string `yaml:"datacenter" mapstructure:"datacenter"`

	// Token is the ACL token for authentication.
	Token string `yaml:"token" mapstructure:"token"`

	// Namespace for Consul Enterprise.
	Namespace string `yaml:"namespace" mapstructure:"namespace"`

	// AllowUnhealthy returns instances whose checks are not passing.
	AllowUnhealthy bool `yaml:"allow_unhealthy" mapstructure:"allow_unhealthy"`
}

// StaticEndpoint describes a statically configured service address.
type StaticEndpoint struct {
	Name    string `yaml:"name" mapstructure:"name" validate:"required"`
	Type    string `yaml:"type" mapstructure:"type"`
	Address string `yaml:"address" mapstructure:"address" validate:"required,url"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Provider = strings.ToLower(c.Provider)
	if c.Provider == "" {
		c.Provider = ProviderStatic
	}
	if c.Provider == ProviderConsul {
		if c.Consul.Address == "" {
			c.Consul.Address = "localhost:8500"
		}
		if c.Consul.Scheme == "" {
			c.Consul.Scheme = "http"
		}
	}
	for i := range c.Endpoints {
		if c.Endpoints[i].Type == "" {
			c.Endpoints[i].Type = ServiceTypeREST
		}
	}
}

// Validate checks that required fields are present and consistent.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

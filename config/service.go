package config

import (
	"fmt"

	"github.com/kbukum/restclient/discovery"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/rest"
	"github.com/kbukum/restclient/validation"
)

// ServiceConfig is the configuration of a service that calls other
// services through rest clients. Projects extend it by embedding:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Billing BillingConfig `yaml:"billing" mapstructure:"billing"`
//	}
type ServiceConfig struct {
	Name        string           `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string           `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config    `yaml:"logging" mapstructure:"logging"`
	Discovery   discovery.Config `yaml:"discovery" mapstructure:"discovery"`
	REST        rest.Config      `yaml:"rest" mapstructure:"rest"`
}

// ApplyDefaults applies default values to every section.
// Embedding structs that override it should call it first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	c.Discovery.ApplyDefaults()
	c.REST.ApplyDefaults()
}

// Validate validates every section.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// NewLogger builds the service logger from the logging section.
func (c *ServiceConfig) NewLogger() *logger.Logger {
	return logger.New(&c.Logging, c.Name)
}

// NewProvider builds the discovery provider selected by the discovery
// section. The provider package must be linked in, for example with a
// blank import of discovery/static or discovery/consul.
func (c *ServiceConfig) NewProvider(log *logger.Logger) (discovery.Provider, error) {
	return discovery.NewProvider(c.Discovery, log)
}

// ClientOptions returns the rest.Client options of the rest section.
func (c *ServiceConfig) ClientOptions() []rest.Option {
	return []rest.Option{rest.WithConfig(c.REST)}
}

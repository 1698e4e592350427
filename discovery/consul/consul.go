// Package consul provides a discovery.Provider that resolves service
// addresses from the HashiCorp Consul health API.
//
// Instances are filtered by a tag equal to the requested service type
// (for example "rest"). The scheme defaults to http and can be overridden
// per instance with the "scheme" service meta key.
package consul

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/hashicorp/consul/api"

	"github.com/kbukum/restclient/discovery"
	"github.com/kbukum/restclient/logger"
)

// Provider implements discovery.Provider using HashiCorp Consul.
type Provider struct {
	client      *api.Client
	cfg         discovery.ConsulConfig
	passingOnly bool
	log         *logger.Logger
}

func init() {
	discovery.RegisterProviderFactory(discovery.ProviderConsul, func(cfg discovery.Config, log *logger.Logger) (discovery.Provider, error) {
		return NewProvider(cfg.Consul, log)
	})
}

// NewProvider creates a Provider from the given Consul settings.
func NewProvider(cfg discovery.ConsulConfig, log *logger.Logger) (*Provider, error) {
	apiCfg := api.DefaultConfig()
	if cfg.Address != "" {
		apiCfg.Address = cfg.Address
	}
	if cfg.Scheme != "" {
		apiCfg.Scheme = cfg.Scheme
	}
	if cfg.Token != "" {
		apiCfg.Token = cfg.Token
	}
	if cfg.Datacenter != "" {
		apiCfg.Datacenter = cfg.Datacenter
	}
	if cfg.Namespace != "" {
		apiCfg.Namespace = cfg.Namespace
	}

	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("consul client: %w", err)
	}
	if log == nil {
		log = logger.WithComponent("discovery")
	}

	return &Provider{
		client:      client,
		cfg:         cfg,
		passingOnly: !cfg.AllowUnhealthy,
		log:         log,
	}, nil
}

// ServiceAddress returns the base URL of the first instance of resourceName
// tagged with serviceType, or "" if Consul knows no such instance.
func (p *Provider) ServiceAddress(ctx context.Context, resourceName, serviceType string) (string, error) {
	opts := (&api.QueryOptions{}).WithContext(ctx)
	entries, _, err := p.client.Health().Service(resourceName, serviceType, p.passingOnly, opts)
	if err != nil {
		return "", fmt.Errorf("consul lookup %q: %w", resourceName, err)
	}
	if len(entries) == 0 {
		p.log.Debug("no consul instances", logger.Fields(
			logger.FieldResource, resourceName, logger.FieldServiceType, serviceType,
		))
		return "", nil
	}

	addr := entryAddress(entries[0])
	p.log.Debug("resolved service address", logger.Fields(
		logger.FieldResource, resourceName, logger.FieldBaseURL, addr, "instances", len(entries),
	))
	return addr, nil
}

// entryAddress builds scheme://host:port, preferring the service address
// over the node address.
func entryAddress(e *api.ServiceEntry) string {
	host := e.Service.Address
	if host == "" && e.Node != nil {
		host = e.Node.Address
	}
	scheme := "http"
	if s, ok := e.Service.Meta["scheme"]; ok && s != "" {
		scheme = s
	}
	if e.Service.Port == 0 {
		return scheme + "://" + host
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(e.Service.Port))
}

var _ discovery.Provider = (*Provider)(nil)

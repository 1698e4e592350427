// Package static provides a discovery.Provider backed by a fixed list of
// endpoints, typically loaded from configuration. Useful for local
// development, containers with well-known hostnames, and tests.
package static

import (
	"context"
	"strings"
	"sync"

	"github.com/kbukum/restclient/discovery"
	"github.com/kbukum/restclient/logger"
)

// Provider implements discovery.Provider using an in-memory address table.
type Provider struct {
	mu        sync.RWMutex
	addresses map[string]string // keyed by lower(name)/lower(type)
}

func init() {
	discovery.RegisterProviderFactory(discovery.ProviderStatic, func(cfg discovery.Config, _ *logger.Logger) (discovery.Provider, error) {
		return NewProvider(cfg.Endpoints), nil
	})
}

// NewProvider creates a Provider pre-populated from static config.
// Later endpoints replace earlier ones with the same name and type.
func NewProvider(endpoints []discovery.StaticEndpoint) *Provider {
	p := &Provider{addresses: make(map[string]string, len(endpoints))}
	for _, ep := range endpoints {
		p.Set(ep.Name, ep.Type, ep.Address)
	}
	return p
}

// Set stores the address of a service, replacing any previous value.
// An empty serviceType means discovery.ServiceTypeREST.
func (p *Provider) Set(resourceName, serviceType, address string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addresses[key(resourceName, serviceType)] = address
}

// Remove forgets the address of a service.
func (p *Provider) Remove(resourceName, serviceType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.addresses, key(resourceName, serviceType))
}

// ServiceAddress returns the configured address, or "" when unknown.
// Names and types are matched case-insensitively.
func (p *Provider) ServiceAddress(_ context.Context, resourceName, serviceType string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.addresses[key(resourceName, serviceType)], nil
}

func key(resourceName, serviceType string) string {
	if serviceType == "" {
		serviceType = discovery.ServiceTypeREST
	}
	return strings.ToLower(resourceName) + "/" + strings.ToLower(serviceType)
}

var _ discovery.Provider = (*Provider)(nil)

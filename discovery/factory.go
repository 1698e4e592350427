package discovery

import (
	"fmt"
	"sync"

	"github.com/kbukum/restclient/logger"
)

// ProviderFactory creates a Provider from a Config.
type ProviderFactory func(cfg Config, log *logger.Logger) (Provider, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]ProviderFactory)
)

// RegisterProviderFactory registers a backend factory under name.
// Backend packages call this from an init function, so importing
// discovery/static or discovery/consul makes them available to NewProvider.
func RegisterProviderFactory(name string, f ProviderFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// NewProvider applies defaults, validates cfg and builds the selected backend.
func NewProvider(cfg Config, log *logger.Logger) (Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("discovery config: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	factoriesMu.RLock()
	f, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("discovery: provider %q not registered (missing import?)", cfg.Provider)
	}

	p, err := f(cfg, log.WithComponent("discovery"))
	if err != nil {
		return nil, fmt.Errorf("discovery: create %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}

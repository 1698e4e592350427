// Package discovery resolves the network address of a logical service and
// announces, exactly once per process, that address resolution is available.
//
// A Provider answers ServiceAddress(resource, serviceType) with a base URL or
// an empty string. A Ready event carries the provider to every subscriber the
// first time it fires:
//
//	ready := discovery.NewReady()
//	ready.Subscribe(func(ctx context.Context, p discovery.Provider) error {
//	    return client.Initialize(ctx, p)
//	})
//	provider, _ := discovery.NewProvider(cfg, log)
//	err := ready.Fire(ctx, provider)
//
// # Backends
//
//   - discovery/static: endpoints listed in configuration
//   - discovery/consul: healthy instances from HashiCorp Consul
package discovery

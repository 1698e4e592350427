package discovery

import "context"

// ServiceTypeREST is the service type REST clients resolve.
const ServiceTypeREST = "rest"

// Provider resolves the base address of a service.
type Provider interface {
	// ServiceAddress returns the address of resourceName for the given
	// service type, or an empty string if the service is unknown.
	ServiceAddress(ctx context.Context, resourceName, serviceType string) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, resourceName, serviceType string) (string, error)

// ServiceAddress calls f.
func (f ProviderFunc) ServiceAddress(ctx context.Context, resourceName, serviceType string) (string, error) {
	return f(ctx, resourceName, serviceType)
}

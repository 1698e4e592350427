package static

import (
	"context"
	"testing"

	"github.com/kbukum/restclient/discovery"
)

func TestProvider_ServiceAddress(t *testing.T) {
	p := NewProvider([]discovery.StaticEndpoint{
		{Name: "Users", Type: "rest", Address: "http://users:8080"},
		{Name: "users", Type: "grpc", Address: "users:9090"},
		{Name: "orders", Address: "http://orders"},
	})
	ctx := context.Background()

	tests := []struct {
		name, resource, serviceType, want string
	}{
		{"exact match", "Users", "rest", "http://users:8080"},
		{"case-insensitive name", "USERS", "REST", "http://users:8080"},
		{"other service type", "users", "grpc", "users:9090"},
		{"empty type defaults to rest", "orders", "rest", "http://orders"},
		{"unknown service", "billing", "rest", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.ServiceAddress(ctx, tc.resource, tc.serviceType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ServiceAddress(%q, %q) = %q, want %q", tc.resource, tc.serviceType, got, tc.want)
			}
		})
	}
}

func TestProvider_SetAndRemove(t *testing.T) {
	p := NewProvider(nil)
	ctx := context.Background()

	p.Set("billing", "", "http://billing:1")
	p.Set("billing", "rest", "http://billing:2")
	got, _ := p.ServiceAddress(ctx, "billing", "rest")
	if got != "http://billing:2" {
		t.Errorf("expected replaced address, got %q", got)
	}

	p.Remove("billing", "rest")
	got, _ = p.ServiceAddress(ctx, "billing", "rest")
	if got != "" {
		t.Errorf("expected empty address after remove, got %q", got)
	}
}

func TestRegisteredFactory(t *testing.T) {
	p, err := discovery.NewProvider(discovery.Config{
		Endpoints: []discovery.StaticEndpoint{{Name: "users", Address: "http://users:8080"}},
	}, nil)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	got, _ := p.ServiceAddress(context.Background(), "users", discovery.ServiceTypeREST)
	if got != "http://users:8080" {
		t.Errorf("expected configured address, got %q", got)
	}
}

package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/kbukum/restclient/discovery"
)

func TestService_RecordsRequests(t *testing.T) {
	svc := NewService(t, "users", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"a":1}` {
			t.Errorf("handler did not receive the body: %q", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	req, _ := http.NewRequest(http.MethodPost, svc.URL()+"/items?x=1", strings.NewReader(`{"a":1}`))
	req.Header.Set("X-Test", "yes")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()

	got := svc.Requests()
	if len(got) != 1 {
		t.Fatalf("expected 1 request, got %d", len(got))
	}
	r := got[0]
	if r.Method != http.MethodPost || r.Path != "/items" || r.Query != "x=1" || r.Body != `{"a":1}` {
		t.Errorf("unexpected recorded request %+v", r)
	}
	if r.Header.Get("X-Test") != "yes" {
		t.Errorf("header not recorded: %v", r.Header)
	}
}

func TestServices_Provider(t *testing.T) {
	users := NewService(t, "users", JSON(http.StatusOK, `{}`))
	orders := NewService(t, "Orders", JSON(http.StatusOK, `{}`))
	p := Services(users, orders)
	ctx := context.Background()

	if addr, _ := p.ServiceAddress(ctx, "USERS", discovery.ServiceTypeREST); addr != users.URL() {
		t.Errorf("expected users url, got %q", addr)
	}
	if addr, _ := p.ServiceAddress(ctx, "orders", discovery.ServiceTypeREST); addr != orders.URL() {
		t.Errorf("expected orders url, got %q", addr)
	}
	if addr, _ := p.ServiceAddress(ctx, "billing", discovery.ServiceTypeREST); addr != "" {
		t.Errorf("expected no address, got %q", addr)
	}
	if addr, _ := p.ServiceAddress(ctx, "users", "grpc"); addr != "" {
		t.Errorf("expected no grpc address, got %q", addr)
	}
}

func TestRespond(t *testing.T) {
	svc := NewService(t, "text", Respond(http.StatusTeapot, "text/plain", "short and stout"))
	resp, err := http.Get(svc.URL())
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusTeapot || string(body) != "short and stout" || resp.Header.Get("Content-Type") != "text/plain" {
		t.Errorf("unexpected response %d %q %q", resp.StatusCode, resp.Header.Get("Content-Type"), body)
	}
}

package rest

import (
	stderrors "errors"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/restclient/auth/jwt"
)

func TestRequestIDHook(t *testing.T) {
	hook := RequestIDHook()

	req := testRequest(MethodGet, "/")
	if err := hook(req); err != nil {
		t.Fatalf("hook failed: %v", err)
	}
	id := req.Headers()["x-request-id"]
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected uuid request id, got %q", id)
	}

	req = testRequest(MethodGet, "/").WithHeader("x-request-id", "fixed")
	_ = hook(req)
	if got := req.Headers()["x-request-id"]; got != "fixed" {
		t.Errorf("existing request id overwritten: %q", got)
	}
}

func TestServiceTokenHook(t *testing.T) {
	issuer, err := jwt.NewIssuer(jwt.Config{Secret: "s3cret", Issuer: "orders"})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	c := newTestClient(t, "http://users", WithHook(ServiceTokenHook(issuer)))

	req, err := c.Create(MethodGet, "/")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	auth := req.Headers()["authorization"]
	if len(auth) < len("Bearer ") || auth[:7] != "Bearer " {
		t.Fatalf("expected bearer token, got %q", auth)
	}
	claims, err := issuer.Verify(auth[7:], "Users")
	if err != nil {
		t.Fatalf("token does not verify for the target service: %v", err)
	}
	if claims.Issuer != "orders" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

type failingIssuer struct{ err error }

func (f failingIssuer) Token(string) (string, error) { return "", f.err }

func TestServiceTokenHook_Error(t *testing.T) {
	boom := stderrors.New("key unavailable")
	err := ServiceTokenHook(failingIssuer{boom})(testRequest(MethodGet, "/"))
	if !stderrors.Is(err, boom) {
		t.Errorf("expected wrapped issuer error, got %v", err)
	}
}

func TestChainHooks(t *testing.T) {
	var order []string
	step := func(name string) Hook {
		return func(*Request) error {
			order = append(order, name)
			return nil
		}
	}
	boom := stderrors.New("stop")

	err := ChainHooks(step("a"), nil, step("b"), func(*Request) error { return boom }, step("c"))(testRequest(MethodGet, "/"))
	if !stderrors.Is(err, boom) {
		t.Errorf("expected chain error, got %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("unexpected order %v", order)
	}
}

package rest_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/restclient/discovery"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/rest"
	"github.com/kbukum/restclient/testutil"
)

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ExampleClient() {
	srv := httptest.NewServer(testutil.JSON(http.StatusOK, `{"id":"u1","name":"Ada"}`))
	defer srv.Close()
	provider := discovery.ProviderFunc(func(context.Context, string, string) (string, error) {
		return srv.URL, nil
	})

	ready := discovery.NewReady()
	client := rest.New("users", rest.WithReadiness(ready), rest.WithLogger(logger.NewNop()))
	_ = ready.Fire(context.Background(), provider)

	req, err := client.Create(rest.MethodGet, "/users/{id}", rest.PathArg("id", "u1"))
	if err != nil {
		fmt.Println(err)
		return
	}
	user, err := rest.Decode[User](context.Background(), req)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(user.Name)
	// Output: Ada
}

func TestClient_AgainstFakeService(t *testing.T) {
	users := testutil.NewService(t, "users", testutil.JSON(http.StatusCreated, `{"id":"u2"}`))
	client, err := rest.New("users", rest.WithoutAutoInit(), rest.WithLogger(logger.NewNop())).
		WithConfigProvider(context.Background(), users.Provider())
	if err != nil {
		t.Fatalf("WithConfigProvider failed: %v", err)
	}

	got, err := client.Execute(context.Background(), rest.MethodPost, "/users",
		rest.BodyArg(User{Name: "Grace"}),
		rest.QueryArg("notify", true),
		rest.HeaderArg("X-Tenant", "acme"),
	)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if m, ok := got.(map[string]any); !ok || m["id"] != "u2" {
		t.Errorf("unexpected result %#v", got)
	}

	reqs := users.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	r := reqs[0]
	if r.Method != http.MethodPost || r.Path != "/users" || r.Query != "notify=true" {
		t.Errorf("unexpected request %+v", r)
	}
	if r.Body != `{"id":"","name":"Grace"}` {
		t.Errorf("unexpected body %s", r.Body)
	}
	if r.Header.Get("X-Tenant") != "acme" || r.Header.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected headers %v", r.Header)
	}
}

// Package testutil provides fake services for testing code that calls
// other services through rest clients.
//
//	users := testutil.NewService(t, "users", testutil.JSON(http.StatusOK, `{"id":"u1"}`))
//	client, _ := rest.New("users", rest.WithoutAutoInit()).
//		WithConfigProvider(ctx, users.Provider())
//	...
//	if got := users.Requests()[0].Path; got != "/users/u1" { ... }
package testutil

// Package rest builds and dispatches HTTP calls against a service whose
// address is resolved through a discovery.Provider.
//
// A Client is bound to one logical service name. It becomes ready once
// the provider resolves the service's address, either when the
// process-wide discovery.Ready event fires or when Initialize is called
// directly. Requests are then described declaratively:
//
//	users := rest.New("users")
//	req, err := users.Create(rest.MethodGet, "/users/{id}",
//		rest.PathArg("id", id),
//		rest.QueryArg("expand", "groups"),
//	)
//	if err != nil {
//		return err
//	}
//	user, err := rest.Decode[User](ctx, req)
//
// Responses with status 404 resolve to nil without an error. Other 4xx
// and 5xx responses fail with a *RequestError whose message is taken from
// the "error" field of a JSON body.
package rest

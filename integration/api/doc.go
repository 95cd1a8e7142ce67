// Package api implements the HTTP client for the storefront's REST backend.
//
// The client injects the bearer token from a TokenSource on every request,
// decodes the backend's {"message": "..."} error convention into *api.Error,
// and invokes an OnUnauthorized hook whenever the backend answers 401 so the
// session layer can wipe stale credentials.
//
// All calls take a context and are bounded by the client timeout, so a slow
// backend can never hang a caller indefinitely.
//
// Example:
//
//	client := api.New(api.Config{BaseURL: "https://backend.example.com/api"},
//		api.WithTokenSource(tokens),
//		api.WithOnUnauthorized(func() { sessions.Logout() }),
//	)
//
//	var products []catalog.Product
//	err := client.Get(ctx, "/products", &products)
package api

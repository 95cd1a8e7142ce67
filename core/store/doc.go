// Package store provides the durable local key-value store that mirrors the
// storefront's client-side state between runs: the session token, the user
// profile, and the cart contents live here under fixed well-known keys.
//
// Two implementations ship with the package: a JSON-file store that persists
// atomically to a single file (the browser localStorage analog), and an
// in-memory store for tests. A Redis-backed implementation for shared-state
// deployments lives in integration/store/redis.
//
// Basic usage:
//
//	st, err := store.NewFile("~/.storefront/state.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := store.SetJSON(ctx, st, store.KeyCart, items); err != nil {
//		log.Fatal(err)
//	}
//
//	var items []cart.LineItem
//	err = store.GetJSON(ctx, st, store.KeyCart, &items)
//
// Concurrent writers follow last-writer-wins semantics; the store provides
// no cross-process locking.
package store

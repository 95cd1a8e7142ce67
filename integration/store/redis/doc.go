// Package redis implements the store.Store interface on Redis, for kiosk and
// multi-device deployments where the client state must outlive a single
// machine's disk.
//
// Connect validates the connection URL, retries with a fixed interval until
// Redis answers a ping, and respects the caller's context throughout. Keys
// are namespaced with a configurable prefix so several storefront instances
// can share one database.
//
// Usage:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	st := redis.NewStore(client, redis.WithKeyPrefix("kiosk42:"))
package redis

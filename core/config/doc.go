// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/cbcbeauty/storefront/core/config"
//
//	type APIConfig struct {
//		BaseURL string        `env:"STOREFRONT_API_URL,required"`
//		Timeout time.Duration `env:"STOREFRONT_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	func main() {
//		var api APIConfig
//
//		// Load with error handling
//		if err := config.Load(&api); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&api)
//	}
//
// Each configuration type is loaded only once per application lifetime;
// repeated Load calls for the same type return the cached value.
package config

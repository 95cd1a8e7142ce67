// Package logger provides structured logging helpers built on Go's standard
// slog package: a small factory for text/JSON handlers and a set of nil-safe
// attribute constructors for the storefront's common logging fields.
//
// Basic usage:
//
//	import "github.com/cbcbeauty/storefront/core/logger"
//
//	log := logger.New(logger.WithLevel(slog.LevelDebug))
//
//	log.Info("order placed",
//		logger.Component("checkout"),
//		logger.OrderID("ORD-1042"),
//	)
//
// Attribute helpers return an empty slog.Attr for zero values, so calls like
// logger.Error(err) are safe without explicit nil checks.
package logger

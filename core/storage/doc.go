// Package storage defines the object-storage abstraction for product images:
// the Storage interface its integrations implement, upload key generation,
// and an Uploader that validates and pushes image batches in parallel.
//
// Object keys follow the pattern dir/<millis>-<random>.<ext>, so concurrent
// uploads of files with identical names never collide.
//
// Usage:
//
//	uploader := storage.NewUploader(s3Store,
//		storage.WithUploadDir("products"),
//	)
//
//	urls, err := uploader.UploadImages(ctx, []storage.Upload{
//		{Filename: "serum.jpg", Content: f, Size: info.Size()},
//	})
package storage

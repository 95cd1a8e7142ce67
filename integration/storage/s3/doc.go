// Package s3 implements the storage.Storage interface over Amazon S3 and
// S3-compatible services (MinIO, Wasabi, Supabase Storage).
//
// Product image keys are validated against path traversal, uploads carry a
// proper Content-Type, and public URLs are generated in the form the
// configuration implies: a custom CDN base, a path-style or virtual-hosted
// custom endpoint, or the standard AWS shapes.
//
// Usage:
//
//	store, err := s3.New(ctx, s3.Config{
//		Bucket: "product-images",
//		Region: "eu-central-1",
//	})
//	if err != nil {
//		return err
//	}
//
//	file, err := store.Save(ctx, key, storage.Upload{
//		Filename: "serum.jpg",
//		Content:  f,
//	})
package s3

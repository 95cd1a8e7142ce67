package storage

import (
	"context"
	"io"
)

// Upload carries one file's content and metadata into a Save call.
type Upload struct {
	Filename    string    // original client-side filename
	Content     io.Reader // file bytes; consumed by Save
	Size        int64     // bytes, when known
	ContentType string    // sniffed from the extension when empty
}

// File describes a stored object.
type File struct {
	Filename     string // sanitized original filename
	RelativePath string // object key within the bucket
	Size         int64
	ContentType  string
	Extension    string
}

// Storage is the object store product images live in. Implementations must
// be safe for concurrent use; the Uploader pushes batches in parallel.
type Storage interface {
	// Save writes the upload's content under key and returns the stored
	// file's metadata.
	Save(ctx context.Context, key string, up Upload) (*File, error)

	// Delete removes the object at key. Deleting a missing object returns
	// ErrFileNotFound.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present at key.
	Exists(ctx context.Context, key string) bool

	// URL returns the public URL for the object at key.
	URL(key string) string
}

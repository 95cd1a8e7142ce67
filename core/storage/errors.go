package storage

import "errors"

var (
	// ErrInvalidConfig is returned when a storage integration is created
	// without its required settings.
	ErrInvalidConfig = errors.New("storage: invalid config")

	// ErrInvalidPath is returned for object keys that escape the upload
	// directory.
	ErrInvalidPath = errors.New("storage: invalid path")

	// ErrNilContent is returned when an upload carries no reader.
	ErrNilContent = errors.New("storage: nil content")

	// ErrFileNotFound is returned when the object does not exist.
	ErrFileNotFound = errors.New("storage: file not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("storage: bucket not found")

	// ErrAccessDenied is returned when the credentials lack permission for
	// the operation.
	ErrAccessDenied = errors.New("storage: access denied")

	// ErrOperationTimeout is returned when the operation exceeded its
	// deadline.
	ErrOperationTimeout = errors.New("storage: operation timeout")

	// ErrOperationCanceled is returned when the operation's context was
	// cancelled.
	ErrOperationCanceled = errors.New("storage: operation canceled")

	// ErrServiceUnavailable is returned for throttling and availability
	// failures; safe to retry.
	ErrServiceUnavailable = errors.New("storage: service unavailable")

	// ErrNotAnImage is returned when an upload's content type is not an
	// image type.
	ErrNotAnImage = errors.New("storage: not an image")

	// ErrTooManyImages is returned when an upload batch exceeds the
	// configured limit.
	ErrTooManyImages = errors.New("storage: too many images")
)

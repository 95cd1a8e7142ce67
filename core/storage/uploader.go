package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cbcbeauty/storefront/core/logger"
	"github.com/cbcbeauty/storefront/pkg/async"
)

// Uploader defaults.
const (
	DefaultUploadDir = "products"
	DefaultMaxBatch  = 5
)

// Uploader validates image uploads and pushes them to the object store in
// parallel, returning public URLs in upload order.
type Uploader struct {
	storage  Storage
	dir      string
	maxBatch int
	logger   *slog.Logger
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithUploadDir sets the key prefix uploads land under. Default "products".
func WithUploadDir(dir string) UploaderOption {
	return func(u *Uploader) {
		if dir != "" {
			u.dir = dir
		}
	}
}

// WithMaxBatch caps how many images a single batch may carry. Default 5.
func WithMaxBatch(n int) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.maxBatch = n
		}
	}
}

// WithUploaderLogger configures structured logging for the uploader.
func WithUploaderLogger(log *slog.Logger) UploaderOption {
	return func(u *Uploader) {
		if log != nil {
			u.logger = log
		}
	}
}

// NewUploader creates an image uploader over the given store.
func NewUploader(st Storage, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		storage:  st,
		dir:      DefaultUploadDir,
		maxBatch: DefaultMaxBatch,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadImage validates and stores a single image, returning its public URL.
func (u *Uploader) UploadImage(ctx context.Context, up Upload) (string, error) {
	if err := u.validate(up); err != nil {
		return "", err
	}
	return u.upload(ctx, up)
}

// UploadImages validates the whole batch up front, then uploads every image
// in parallel. URLs come back in batch order; any single failure fails the
// batch with the individual errors joined.
func (u *Uploader) UploadImages(ctx context.Context, ups []Upload) ([]string, error) {
	if len(ups) > u.maxBatch {
		return nil, fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyImages, len(ups), u.maxBatch)
	}
	for _, up := range ups {
		if err := u.validate(up); err != nil {
			return nil, err
		}
	}

	futures := make([]*async.Future[string], len(ups))
	for i, up := range ups {
		futures[i] = async.Async(ctx, up, u.upload)
	}

	urls, err := async.WaitAll(futures...)
	if err != nil {
		return nil, fmt.Errorf("storage: upload images: %w", err)
	}

	u.logger.Info("images uploaded",
		logger.Component("storage"),
		logger.Count("images", len(urls)))
	return urls, nil
}

func (u *Uploader) validate(up Upload) error {
	if up.Content == nil {
		return ErrNilContent
	}
	if !strings.HasPrefix(contentType(up), "image/") {
		return fmt.Errorf("%w: %s", ErrNotAnImage, up.Filename)
	}
	return nil
}

func (u *Uploader) upload(ctx context.Context, up Upload) (string, error) {
	key := UploadPath(u.dir, up.Filename)

	up.ContentType = contentType(up)
	file, err := u.storage.Save(ctx, key, up)
	if err != nil {
		return "", err
	}

	u.logger.Debug("image stored",
		logger.Component("storage"),
		slog.String("key", file.RelativePath))
	return u.storage.URL(file.RelativePath), nil
}

func contentType(up Upload) string {
	if up.ContentType != "" {
		return up.ContentType
	}
	return ContentTypeByExtension(up.Filename)
}

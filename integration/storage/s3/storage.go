package s3

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cbcbeauty/storefront/core/storage"
)

// Compile-time check that Storage implements the storage.Storage interface.
var _ storage.Storage = (*Storage)(nil)

// Client is the slice of the S3 API the storefront uses.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// Config contains the bucket settings for product image storage.
type Config struct {
	Bucket         string `env:"STOREFRONT_S3_BUCKET,required"`
	Region         string `env:"STOREFRONT_S3_REGION,required"`
	AccessKeyID    string `env:"STOREFRONT_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"STOREFRONT_S3_SECRET_KEY"`
	Endpoint       string `env:"STOREFRONT_S3_ENDPOINT"`         // S3-compatible services
	BaseURL        string `env:"STOREFRONT_S3_BASE_URL"`         // CDN or public URL base
	ForcePathStyle bool   `env:"STOREFRONT_S3_FORCE_PATH_STYLE"` // MinIO and friends
}

// Storage stores product images in an S3 bucket. Safe for concurrent use.
type Storage struct {
	client         Client
	bucket         string
	region         string
	endpoint       string
	baseURL        string
	forcePathStyle bool
	uploadTimeout  time.Duration
}

// Option configures Storage.
type Option func(*options)

type options struct {
	httpClient    *http.Client
	client        Client
	uploadTimeout time.Duration
}

// WithClient sets a pre-configured S3 client, mainly for tests.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithUploadTimeout bounds each Save call so a stalled upload cannot hang
// the checkout's admin flows. Zero relies on the caller's context deadline.
func WithUploadTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.uploadTimeout = timeout
	}
}

// New creates an S3-backed image store. Static credentials are used when
// configured; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, storage.ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}

		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("s3: load aws config: %w", err)
		}

		client = s3aws.NewFromConfig(awsCfg, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &Storage{
		client:         client,
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		baseURL:        cfg.BaseURL,
		forcePathStyle: cfg.ForcePathStyle,
		uploadTimeout:  o.uploadTimeout,
	}, nil
}

// Save uploads the file's content under key and returns its metadata.
func (s *Storage) Save(ctx context.Context, key string, up storage.Upload) (*storage.File, error) {
	if up.Content == nil {
		return nil, storage.ErrNilContent
	}

	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	contentType := up.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeByExtension(up.Filename)
	}

	if _, err := s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        up.Content,
		ContentType: aws.String(contentType),
	}); err != nil {
		return nil, classifyError(err, "upload file")
	}

	return &storage.File{
		Filename:     storage.SanitizeFilename(up.Filename),
		RelativePath: key,
		Size:         up.Size,
		ContentType:  contentType,
		Extension:    storage.Extension(up.Filename),
	}, nil
}

// Delete removes the object at key. Missing objects report
// storage.ErrFileNotFound.
func (s *Storage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	// Head first so deleting a missing object fails consistently; S3's
	// DeleteObject succeeds on absent keys.
	if _, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyError(err, "check file")
	}

	if _, err := s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyError(err, "delete file")
	}
	return nil
}

// Exists reports whether an object is present at key.
func (s *Storage) Exists(ctx context.Context, key string) bool {
	key, err := cleanKey(key)
	if err != nil {
		return false
	}

	_, err = s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// URL returns the public URL for the object at key:
//   - custom BaseURL (CDN): {base}/{key}
//   - custom endpoint: path-style {endpoint}/{bucket}/{key} or
//     virtual-hosted {bucket}.{endpoint}/{key}
//   - AWS: the standard regional forms
func (s *Storage) URL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + key
	}

	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/")
		protocol := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			protocol = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}

		if s.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", protocol, endpoint, s.bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", protocol, s.bucket, endpoint, key)
	}

	if s.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// cleanKey normalizes the object key and rejects path traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidPath, key)
	}
	return key, nil
}

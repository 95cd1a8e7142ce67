package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/cbcbeauty/storefront/core/storage"
)

// classifyError converts S3 failures to the storage package's sentinel
// errors so callers never depend on AWS error types.
func classifyError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Context errors take priority over whatever the SDK wrapped them in.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", storage.ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s", storage.ErrOperationCanceled, operation)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", storage.ErrFileNotFound, operation)
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %s", storage.ErrFileNotFound, operation)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return storage.ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", storage.ErrFileNotFound, operation)
		case "NoSuchBucket":
			return storage.ErrBucketNotFound
		case "AccessDenied":
			return fmt.Errorf("%w: %s", storage.ErrAccessDenied, operation)
		case "RequestTimeout":
			return fmt.Errorf("%w: %s", storage.ErrOperationTimeout, operation)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s", storage.ErrServiceUnavailable, operation)
		default:
			return fmt.Errorf("s3: %s failed (code %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("s3: %s failed: %w", operation, err)
}

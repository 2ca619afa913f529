package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/Lllllllleong/rfpingest/internal/services"
)

// ErrObjectTooLarge is returned when an upload exceeds the configured size limit.
var ErrObjectTooLarge = errors.New("source file exceeds size limit")

// ObjectSource downloads uploaded files from a single bucket.
type ObjectSource struct {
	bucket   *storage.BucketHandle
	name     string
	maxBytes int64
}

// NewObjectSource reads from bucketName. maxBytes <= 0 disables the size guard.
func NewObjectSource(client *storage.Client, bucketName string, maxBytes int64) *ObjectSource {
	return &ObjectSource{bucket: client.Bucket(bucketName), name: bucketName, maxBytes: maxBytes}
}

var _ services.ObjectSource = (*ObjectSource)(nil)

func (s *ObjectSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	reader, err := s.bucket.Object(path).NewReader(ctx)
	if err != nil {
		return nil, describeStorageError(s.name, path, err)
	}
	defer reader.Close()

	return readLimited(reader, s.maxBytes)
}

// readLimited reads all of r, failing once more than maxBytes are available.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w of %d bytes", ErrObjectTooLarge, maxBytes)
	}
	return data, nil
}

func describeStorageError(bucket, object string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("object gs://%s/%s does not exist: %w", bucket, object, err)
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("access denied to gs://%s/%s: %w", bucket, object, err)
		case http.StatusNotFound:
			return fmt.Errorf("object gs://%s/%s does not exist: %w", bucket, object, err)
		}
	}
	return fmt.Errorf("failed to open gs://%s/%s: %w", bucket, object, err)
}

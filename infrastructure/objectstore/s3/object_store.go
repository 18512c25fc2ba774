// Package s3 implements the object-store boundary used by the importer.
package s3

import (
	"context"
	"errors"
	"io"

	"catalog-backend/application/ports"
	appErrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// ObjectStore implements ports.ObjectStore using S3.
type ObjectStore struct {
	client *s3.Client
	logger *zap.Logger
}

// NewObjectStore creates an S3-backed object store.
func NewObjectStore(client *s3.Client, logger *zap.Logger) ports.ObjectStore {
	return &ObjectStore{
		client: client,
		logger: logger,
	}
}

// Get streams the object at bucket/key. A missing object is distinguished
// from other failures and surfaces as source not found.
func (s *ObjectStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.NewSourceNotFoundError(bucket, key)
		}
		s.logger.Error("failed to get object",
			zap.Error(err),
			zap.String("bucket", bucket),
			zap.String("key", key),
		)
		return nil, appErrors.NewStorageError("get object", err)
	}
	return out.Body, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}

package blobstore

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/c360/pipekit/errors"
)

// MinioClient adapts a *minio.Client to the ObjectClient seam, giving
// the blob backend an S3-compatible implementation (AWS S3, MinIO,
// GCS in interoperability mode).
type MinioClient struct {
	client *minio.Client
}

var _ ObjectClient = (*MinioClient)(nil)

// NewMinioClient wraps an already-configured minio client.
func NewMinioClient(client *minio.Client) *MinioClient {
	return &MinioClient{client: client}
}

// GetObject fetches the blob's full content. Missing objects map to
// ErrObjectNotFound.
func (c *MinioClient) GetObject(ctx context.Context, bucket, name string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinioError(err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateMinioError(err)
	}
	return data, nil
}

// PutObject uploads data, replacing any existing object.
func (c *MinioClient) PutObject(ctx context.Context, bucket, name string, data []byte, contentType string) error {
	_, err := c.client.PutObject(ctx, bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return translateMinioError(err)
	}
	return nil
}

// RemoveObject deletes the named object.
func (c *MinioClient) RemoveObject(ctx context.Context, bucket, name string) error {
	if err := c.client.RemoveObject(ctx, bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return translateMinioError(err)
	}
	return nil
}

// translateMinioError maps the store's coded responses onto the
// package sentinels so the backend never inspects minio types.
func translateMinioError(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return errors.Wrap(ErrObjectNotFound, "MinioClient", "request", resp.Key)
	case "NoSuchBucket":
		return errors.WrapTransient(errors.ErrBucketNotFound, "MinioClient", "request", resp.BucketName)
	case "AccessDenied":
		return errors.WrapFatal(errors.ErrPermissionDenied, "MinioClient", "request", resp.Message)
	default:
		return err
	}
}

package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/gymfit-client/internal/model"
)

// Scheme is the URI scheme of assets served by this client.
const Scheme = "s3"

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
func (w minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}

var _ model.FileInspector = (*Client)(nil)

// Client inspects photos picked from the remote gallery bucket.
// Assets are addressed as s3://<bucket>/<key>; an empty bucket means the default one.
type Client struct {
	api    minioAPI
	bucket string
}

// NewClient creates a new MinIO gallery client using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, bucket string) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{c: client}, bucket)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket string) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
	}

	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("gallery bucket %q does not exist", c.bucket)
	}

	return c, nil
}

// StatSize returns the object size. A missing object is model.ErrNotFound.
func (c *Client) StatSize(ctx context.Context, uri string) (int64, bool, error) {
	bucket, key, err := c.parse(uri)
	if err != nil {
		return 0, false, err
	}

	info, err := c.api.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, false, fmt.Errorf("failed to stat object %s: %w", key, model.ErrNotFound)
		}
		return 0, false, fmt.Errorf("failed to stat object: %w", err)
	}

	if info.Size < 0 {
		return 0, false, nil
	}
	return info.Size, true, nil
}

// Open streams the object.
func (c *Client) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := c.parse(uri)
	if err != nil {
		return nil, err
	}

	obj, err := c.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

func (c *Client) parse(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse uri: %w", err)
	}
	if u.Scheme != Scheme {
		return "", "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	bucket = u.Host
	if bucket == "" {
		bucket = c.bucket
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("empty object key in %q", uri)
	}
	return bucket, key, nil
}

package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinIO uploads into an S3 compatible bucket; the reference is the object URL.
type MinIO struct {
	Client *minio.Client
	Bucket string
}

// NewMinIO connects and makes sure the bucket exists.
func NewMinIO(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *logrus.Logger) (*MinIO, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		logger.WithField("bucket", bucket).Info("created minio bucket")
	}
	return &MinIO{Client: client, Bucket: bucket}, nil
}

func (m *MinIO) Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if _, err := m.Client.PutObject(ctx, m.Bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", err
	}
	return m.Client.EndpointURL().JoinPath(m.Bucket, name).String(), nil
}

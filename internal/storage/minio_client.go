package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"quillhub/internal/config"
)

// Signer hands out short-lived upload URLs so document bytes go straight to
// object storage and never through the API.
type Signer interface {
	PresignPut(ctx context.Context, objectKey string) (string, error)
	PublicURL(objectKey string) string
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
	expiry    time.Duration
}

func NewMinIOClient(cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %w", err)
	}

	return &MinIOClient{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		expiry:    cfg.URLExpiry,
	}, nil
}

// EnsureBucket creates the document bucket if it does not exist yet.
func (m *MinIOClient) EnsureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("error creating bucket %s: %w", m.bucket, err)
	}

	return nil
}

func (m *MinIOClient) PresignPut(ctx context.Context, objectKey string) (string, error) {
	u, err := m.client.PresignedPutObject(ctx, m.bucket, objectKey, m.expiry)
	if err != nil {
		return "", fmt.Errorf("error presigning upload: %w", err)
	}
	return u.String(), nil
}

func (m *MinIOClient) PublicURL(objectKey string) string {
	return m.publicURL + "/" + url.PathEscape(m.bucket) + "/" + objectKey
}

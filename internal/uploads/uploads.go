package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"staffing-awards/internal/config"
)

// Allowed image types keyed by file extension
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
}

// MaxImageSize is the upload limit for nominee images
const MaxImageSize = 5 << 20

const objectPrefix = "nominee-images/"

// ErrUnsupportedType rejects uploads that are not jpeg, png, or svg
var ErrUnsupportedType = fmt.Errorf("unsupported image type (allowed: jpg, jpeg, png, svg)")

// Service stores nominee images in an S3-compatible bucket and hands back
// public URLs for the nomination records.
type Service struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New creates a new upload service and ensures the bucket exists
func New(cfg *config.StorageConfig) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	s := &Service{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}

	if err := s.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// StoreImage uploads a nominee image and returns its public URL. The caller
// is responsible for enforcing MaxImageSize on the reader.
func (s *Service) StoreImage(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		return "", ErrUnsupportedType
	}

	objectName := objectPrefix + uuid.NewString() + ext

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return s.publicURL + "/" + objectName, nil
}

package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxImageSize caps uploaded images at 5MB each.
const MaxImageSize = 5 * 1024 * 1024

// ImageUploadResult is returned after a successful upload.
type ImageUploadResult struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// ImageStore uploads post images to a MinIO bucket; the database only ever
// holds the returned URLs.
type ImageStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewImageStore connects to MinIO from environment config and ensures the
// bucket exists.
func NewImageStore(ctx context.Context) (*ImageStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "devboard-images"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	baseURL := os.Getenv("MINIO_PUBLIC_URL")
	if baseURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, endpoint)
	}

	return &ImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload stores one image and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	if header.Size > MaxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxImageSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	objectName := uuid.New().String() + ext

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := s.client.PutObject(ctx, s.bucket, objectName, file, header.Size,
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &ImageUploadResult{
		URL: fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName),
		ID:  objectName,
	}, nil
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioStorage keeps uploaded identity scans, contractor licenses and profile
// images in object storage, keyed by a role prefix plus a generated uuid.
type MinioStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewMinioStorage(cfg config.StorageConfig, logger *zap.Logger) (*MinioStorage, error) {
	log := logger.Named("MinioStorage")

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

func (s *MinioStorage) Upload(ctx context.Context, prefix, fileName string, data []byte, contentType string) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.logger.Error("Failed to upload object",
			zap.String("bucket", s.bucket), zap.String("object_key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	s.logger.Info("Object uploaded", zap.String("bucket", s.bucket), zap.String("object_key", objectKey))
	return objectKey, nil
}

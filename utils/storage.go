package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"smelab/backend/config"
)

// ObjectPath builds the canonical upload key for a logical category, namespaced
// by user id: designs/{userID}/{ts}-{filename}.
func ObjectPath(category, userID, filename string) string {
	return fmt.Sprintf("%s/%s/%d-%s", category, userID, time.Now().UnixNano(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

// UploadBlob puts a blob into the uploads bucket and returns its public URL.
// Uses the default AWS credential chain (instance role in production).
func UploadBlob(ctx context.Context, cfg config.Config, objectKey, contentType string, data []byte) (string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS default config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)

	bucket := cfg.S3Bucket
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &objectKey,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return PublicURL(cfg, objectKey), nil
}

// UploadStream is UploadBlob for multipart file streams.
func UploadStream(ctx context.Context, cfg config.Config, objectKey, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return UploadBlob(ctx, cfg, objectKey, contentType, data)
}

// PublicURL derives the public URL for a stored object. Keys that are already
// absolute URLs pass through unchanged (legacy rows store either form).
func PublicURL(cfg config.Config, objectKey string) string {
	if strings.HasPrefix(objectKey, "http://") || strings.HasPrefix(objectKey, "https://") {
		return objectKey
	}
	base := cfg.AssetsCDNBase
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.AWSRegion)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), objectKey)
}

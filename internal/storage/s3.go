package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/wishlane/wishlane/pkg/logger"
)

// BlobStore is the external binary-asset collaborator. Uploads return a
// public URL and an opaque key used for later removal.
type BlobStore interface {
	Upload(data []byte, contentType, folder string) (url string, key string, err error)
	Remove(key string) error
}

type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(bucket, region, baseURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "unable to load SDK config")
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *S3Store) Upload(data []byte, contentType, folder string) (string, string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), extensionFor(contentType))

	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		logger.Error("Failed to put object", "key", key, "error", err)
		return "", "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to upload object")
	}

	return s.baseURL + "/" + key, key, nil
}

func (s *S3Store) Remove(key string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		logger.Error("Failed to delete object", "key", key, "error", err)
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete object")
	}
	return nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ""
	}
}

package aws

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/storage/s3/v2"

	"itembox/pkg/config"
)

type S3 struct {
	bucket   *s3.Storage
	name     string
	endpoint string
	region   string
}

func NewS3Bucket(cfg *config.AppConfig) *S3 {
	bucket := s3.New(s3.Config{
		Endpoint: cfg.AWSEndpoint,
		Bucket:   cfg.AWSBucket,
		Region:   cfg.AWSDefaultRegion,
		Credentials: s3.Credentials{
			AccessKey:       cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: time.Second * 10,
		Reset:          false,
	})

	return &S3{
		bucket:   bucket,
		name:     cfg.AWSBucket,
		endpoint: cfg.AWSEndpoint,
		region:   cfg.AWSDefaultRegion,
	}
}

// Upload stores the object under key with its content type, so the stored
// image is served back with the MIME type it was sniffed as.
func (s *S3) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.bucket.Conn().PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.name),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3) Download(key string) ([]byte, error) {
	return s.bucket.Get(key)
}

func (s *S3) Delete(key string) error {
	return s.bucket.Delete(key)
}

// URLFor derives the retrieval URL for a stored key. Pure string assembly,
// no network call.
func (s *S3) URLFor(key string) string {
	// Custom endpoint (MinIO etc.): http(s)://endpoint/bucket/key
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.name, key)
	}

	// AWS S3 virtual-hosted style
	if s.region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.name, s.region, key)
	}

	return key
}

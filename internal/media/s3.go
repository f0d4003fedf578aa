package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/divyesh350/Skill-Swap-Platform/internal/boot"
)

// Store keeps profile photos in an S3-compatible bucket. Object keys are
// date-partitioned so buckets stay listable.
type Store struct {
	client *s3.Client
	bucket string
	public string
}

func New(ctx context.Context, config *boot.Config) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Media.Region),
	}
	if config.Media.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.Media.AccessKey, config.Media.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.Media.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Media.Endpoint)
			o.UsePathStyle = true
		}
	})

	public := config.Media.Endpoint
	if public == "" {
		public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Media.Bucket, config.Media.Region)
	}

	return &Store{
		client: client,
		bucket: config.Media.Bucket,
		public: public,
	}, nil
}

func createObjectKey() string {
	now := time.Now().UTC()
	return fmt.Sprintf("photos/%d/%02d/%v", now.Year(), now.Month(), uuid.New())
}

func (s *Store) Upload(ctx context.Context, data []byte, contentType string) (string, string, error) {
	objectKey := createObjectKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("putting object: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.public, objectKey), objectKey, nil
}

func (s *Store) Delete(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

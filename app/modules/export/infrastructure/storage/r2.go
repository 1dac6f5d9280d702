// Package exportstorage uploads exported files to Cloudflare R2.
package exportstorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/belote-bot/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Storage writes objects to a single R2 bucket.
type R2Storage struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

// NewR2Storage builds an S3 client against the R2 endpoint of the account.
func NewR2Storage(ctx context.Context, cfg config.StorageConfig) (*R2Storage, error) {
	if cfg.AccountID == "" || cfg.Bucket == "" {
		return nil, errors.New("r2 storage needs an account ID and a bucket")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = endpoint + "/" + cfg.Bucket
	}
	return NewStorage(client, cfg.Bucket, baseURL), nil
}

// NewStorage wraps an existing client.
func NewStorage(client ObjectPutter, bucket, baseURL string) *R2Storage {
	return &R2Storage{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores body under key and returns its public URL.
func (s *R2Storage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to R2: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

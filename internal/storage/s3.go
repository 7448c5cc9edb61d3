// Package storage uploads images to S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
)

// KeyPrefix is the folder every upload is written under.
const KeyPrefix = "uploads/"

// ErrNotConfigured is returned when bucket or credentials are missing.
var ErrNotConfigured = errors.New("S3_BUCKET, S3_ACCESS_KEY or S3_SECRET_KEY missing")

// S3 writes objects to a single bucket.
type S3 struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	publicURL string
}

// NewS3 builds a client from cfg. A custom endpoint switches to path-style
// addressing so MinIO and similar servers work.
func NewS3(ctx context.Context, cfg config.S3) (*S3, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		publicURL: cfg.PublicURL,
	}, nil
}

// NewKey returns a fresh object key keeping the file extension.
func NewKey(filename string) string {
	return KeyPrefix + uuid.NewString() + strings.ToLower(path.Ext(filename))
}

// ContentType guesses the MIME type from the key's extension.
func ContentType(key string) string {
	ct := mime.TypeByExtension(path.Ext(key))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// Upload stores body under key and returns the URL it can be fetched from.
func (s *S3) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if contentType == "" {
		contentType = ContentType(key)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3 upload failed: %w", err)
	}

	return s.ObjectURL(key), nil
}

// OwnsKey reports whether key has the shape NewKey produces: one object
// directly under KeyPrefix.
func OwnsKey(key string) bool {
	name, ok := strings.CutPrefix(key, KeyPrefix)
	return ok && name != "" && !strings.ContainsAny(name, "/\\") && !strings.HasPrefix(name, ".")
}

// Delete removes key from the bucket.
func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("S3 delete failed: %w", err)
	}
	return nil
}

// ObjectURL is the public address of key.
func (s *S3) ObjectURL(key string) string {
	return objectURL(s.publicURL, s.endpoint, s.bucket, s.region, key)
}

func objectURL(publicURL, endpoint, bucket, region, key string) string {
	switch {
	case publicURL != "":
		return publicURL + "/" + key
	case endpoint != "":
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
	}
}

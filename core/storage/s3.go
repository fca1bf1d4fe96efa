package storage

import (
	"context"
	"fmt"
	"time"

	appconfig "campus-events-api/core/config"
	"campus-events-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage issues presigned upload URLs for user avatars and event images.
// The API never proxies file bytes; clients upload directly to the bucket.
type Storage struct {
	presign *s3.PresignClient
	bucket  string
	region  string
}

var instance *Storage

func Init(cfg appconfig.S3Config) *Storage {
	client := s3.New(s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		BaseEndpoint: optionalEndpoint(cfg.Endpoint),
	})

	instance = &Storage{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
	}
	logger.Info("S3 storage configured", "bucket", cfg.Bucket, "region", cfg.Region)
	return instance
}

func Get() *Storage {
	return instance
}

func optionalEndpoint(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return &endpoint
}

// PresignUpload returns a PUT URL valid for 15 minutes for the given object key.
func (s *Storage) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		logger.Error("Storage:PresignUpload:Error:", err)
		return "", err
	}
	return req.URL, nil
}

// PublicURL returns the canonical object URL for a key once uploaded.
func (s *Storage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

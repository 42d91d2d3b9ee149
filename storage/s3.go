package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"redaccion/config"
)

// NewS3Client creates an S3 client for the configured S3-compatible endpoint.
func NewS3Client(cfg *config.Config) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.CoverS3URL,
				SigningRegion:     cfg.CoverS3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.CoverS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.CoverS3Key, cfg.CoverS3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}

// CoverStore uploads disc cover art. It satisfies services.CoverUploader.
type CoverStore struct {
	Client  *s3.Client
	Bucket  string
	BaseURL string
}

// NewCoverStore builds the cover store from the configuration.
func NewCoverStore(cfg *config.Config) (*CoverStore, error) {
	client, err := NewS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return &CoverStore{Client: client, Bucket: cfg.CoverS3Bucket, BaseURL: cfg.CoverS3URL}, nil
}

// Upload stores the data under key and returns the public link.
func (s *CoverStore) Upload(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", s.BaseURL, s.Bucket, key), nil
}

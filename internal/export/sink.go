package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/modgarage/customizer/internal/config"
)

// Sink stores exported documents and returns where they were written.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// NewSink builds the sink selected by export.type.
func NewSink(ctx context.Context, cfg config.ExportConfig) (Sink, error) {
	switch cfg.Type {
	case "", "directory":
		return &DirSink{Dir: cfg.Dir}, nil
	case "s3":
		return NewS3Sink(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown export type: %s", cfg.Type)
	}
}

// DirSink writes documents into a local directory.
type DirSink struct {
	Dir string
}

func (s *DirSink) Put(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	p := filepath.Join(s.Dir, filepath.Base(name))
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return p, nil
}

// S3Sink uploads documents to an S3-compatible bucket.
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Sink creates an S3 sink with static credentials and path-style addressing.
func NewS3Sink(ctx context.Context, cfg config.S3Config) (*S3Sink, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				if cfg.UseSSL {
					endpoint = "https://" + endpoint
				} else {
					endpoint = "http://" + endpoint
				}
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Sink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *S3Sink) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType(strings.TrimPrefix(path.Ext(name), "."))),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

package artifact

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 connection parameters. Credentials fall back to the
// default AWS chain when AccessKeyID is empty.
type S3Config struct {
	Region          string `mapstructure:"region" yaml:"region"`
	Bucket          string `mapstructure:"bucket" yaml:"bucket"`
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint"` // optional, e.g. MinIO
	PathStyle       bool   `mapstructure:"path_style" yaml:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token" yaml:"session_token"`
}

// PutObjectAPI is the part of *s3.Client the sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink writes an artifact to one S3 object.
type S3Sink struct {
	client PutObjectAPI
	bucket string
	key    string
	opts   Options
}

// NewS3Sink connects to S3 using cfg and returns a sink for key.
func NewS3Sink(ctx context.Context, cfg S3Config, key string, opts Options) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, invalidDestination("s3://", "bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3SinkWithClient(client, cfg.Bucket, key, opts)
}

// NewS3SinkWithClient returns a sink using an existing client.
func NewS3SinkWithClient(client PutObjectAPI, bucket, key string, opts Options) (*S3Sink, error) {
	if bucket == "" || key == "" {
		return nil, invalidDestination(fmt.Sprintf("s3://%s/%s", bucket, key), "bucket and key required")
	}
	return &S3Sink{client: client, bucket: bucket, key: key, opts: opts}, nil
}

func (s *S3Sink) Name() string { return "s3" }

func (s *S3Sink) Destination() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Write uploads data, overwriting any existing object.
func (s *S3Sink) Write(ctx context.Context, data []byte) (Info, error) {
	stored, info := prepare(s.Destination(), data, s.opts.Compress)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key),
		Body:          bytes.NewReader(stored),
		ContentLength: aws.Int64(int64(len(stored))),
		ContentType:   aws.String(contentType(s.key, info.Compressed)),
		Metadata:      map[string]string{"blake2b-256": info.Digest},
	}
	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		err = fmt.Errorf("put %s: %w", s.Destination(), err)
	}
	record(s.opts, s.Name(), info, err)
	if err != nil {
		return Info{}, err
	}
	return info, nil
}

// ParseS3URL splits "s3://bucket/key" into bucket and key.
func ParseS3URL(dest string) (bucket, key string, err error) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "s3" {
		return "", "", invalidDestination(dest, "not an s3:// URL")
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", invalidDestination(dest, "bucket and key required")
	}
	return bucket, key, nil
}

func contentType(key string, compressed bool) string {
	if compressed {
		return "application/x-snappy"
	}
	switch {
	case strings.HasSuffix(key, ".rdf"), strings.HasSuffix(key, ".xml"):
		return "application/rdf+xml"
	case strings.HasSuffix(key, ".json"):
		return "application/json"
	case strings.HasSuffix(key, ".yaml"), strings.HasSuffix(key, ".yml"):
		return "application/yaml"
	}
	return "application/octet-stream"
}

// Package s3_report uploads the JSON run report to S3 or any S3-compatible
// store (MinIO, Tigris, gofakes3) once a run finishes.
package s3_report

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/report"
)

// Config holds the configuration for creating an Uploader.
type Config struct {
	Bucket string
	// Prefix is prepended to the object key, e.g. "uiprobe/nightly".
	Prefix string
	// Endpoint targets an S3-compatible service and switches to path-style
	// addressing. Leave empty for AWS S3.
	Endpoint string
	Region   string
	// AccessKeyID and SecretAccessKey are optional; the default AWS
	// credential chain is used when either is empty.
	AccessKeyID     string
	SecretAccessKey string
}

// Uploader is a report.Sink that stores the summary as
// s3://<bucket>/<prefix>/<run id>.json.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an Uploader from cfg.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 report: bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewFromClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewFromClient creates an Uploader from an existing S3 client.
func NewFromClient(client *s3.Client, bucket, prefix string) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (u *Uploader) Name() string { return "s3" }

// Key returns the object key for a run.
func (u *Uploader) Key(runID string) string {
	return path.Join(u.prefix, runID+".json")
}

// Publish is a no-op: the report is uploaded once, on Close.
func (u *Uploader) Publish(context.Context, report.Result) error { return nil }

// Close uploads the summary.
func (u *Uploader) Close(ctx context.Context, s *report.Summary) error {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, s); err != nil {
		return err
	}

	key := u.Key(s.RunID)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 report: failed to put object %q: %w", key, err)
	}

	ctxlog.FromContext(ctx).Info("☁️ Report uploaded", "bucket", u.bucket, "key", key, "size", buf.Len())
	return nil
}

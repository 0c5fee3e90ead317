package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gerrors "github.com/go-faster/errors"

	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

// AvatarStorage persists uploaded files and resolves their public URLs.
type AvatarStorage interface {
	Save(ctx context.Context, key string, contentType string, body []byte) error
	PublicURL(key string) string
}

type S3Storage struct {
	client *s3.Client
	opts   *configuration.StorageOptions
}

func NewS3Storage(ctx context.Context, opts *configuration.StorageOptions) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to load storage config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, opts: opts}, nil
}

func (s *S3Storage) Save(ctx context.Context, key string, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return gerrors.Wrap(err, "failed to store object")
	}
	return nil
}

func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.opts.PublicBaseURL, "/"), key)
}

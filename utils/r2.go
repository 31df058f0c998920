// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrStorageDisabled is returned by Put when the R2 credentials were not
// fully configured. Callers must treat it as an expected condition.
var ErrStorageDisabled = errors.New("object storage is not configured")

// R2Config carries every setting the gateway needs. It is built once in main
// and injected; the gateway keeps no ambient global state.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	PublicBaseURL   string
}

// LoadR2ConfigFromEnv reads the R2_* variables. Missing values are fine —
// the resulting config simply reports Enabled() == false.
func LoadR2ConfigFromEnv() R2Config {
	return R2Config{
		AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("R2_SECRET_ACCESS_KEY"),
		Bucket:          os.Getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}
}

// Enabled is all-or-nothing: a single missing credential disables uploads.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" &&
		c.AccessKeyID != "" &&
		c.AccessKeySecret != "" &&
		c.Bucket != "" &&
		c.PublicBaseURL != ""
}

// R2Storage talks to a Cloudflare R2 bucket through the S3 API.
// A disabled gateway is a valid, inert value — Put fails with
// ErrStorageDisabled instead of crashing the caller.
type R2Storage struct {
	cfg    R2Config
	client *s3.Client
}

// NewR2Storage builds the gateway. An incomplete config yields a disabled
// gateway and no error, so the server can start without storage credentials.
func NewR2Storage(cfg R2Config) (*R2Storage, error) {
	if !cfg.Enabled() {
		return &R2Storage{cfg: cfg}, nil
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.AccessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	return &R2Storage{cfg: cfg, client: s3.NewFromConfig(awsCfg)}, nil
}

// Enabled reports whether uploads can succeed at all.
func (s *R2Storage) Enabled() bool {
	return s.client != nil
}

// Put stores the bytes under key and returns the public URL.
func (s *R2Storage) Put(ctx context.Context, data []byte, key, contentType string) (string, error) {
	if !s.Enabled() {
		return "", ErrStorageDisabled
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.cfg.PublicBaseURL, s.cfg.Bucket, key), nil
}

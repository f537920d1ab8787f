// Package media stores room photos in an S3-compatible bucket.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// keyPrefix is the folder room photos are written under.
const keyPrefix = "rooms"

// Config holds the connection settings of the bucket.
type Config struct {
	Endpoint       string // host:port or URL of the S3 API
	PublicEndpoint string // base URL clients fetch objects from; defaults to Endpoint
	AccessKey      string
	SecretKey      string
	Bucket         string
	Region         string // defaults to us-east-1
	UseSSL         bool
}

// Store uploads photos to a MinIO/S3 bucket and returns their public URL.
type Store struct {
	bucket        string
	publicBaseURL string
	client        *minio.Client
	logger        *slog.Logger

	// bucketMu guards bucketReady. Only success is remembered, so a failed
	// check is retried by the next upload.
	bucketMu    sync.Mutex
	bucketReady bool
}

// NewStore configures a Store. The bucket is checked, and created if
// missing, on the first successful upload.
func NewStore(cfg Config, logger *slog.Logger) (*Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("media: endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("media: bucket is required")
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(hostOf(endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("media: create client: %w", err)
	}

	base := strings.TrimSpace(cfg.PublicEndpoint)
	if base == "" {
		base = endpoint
		if !strings.Contains(base, "://") {
			scheme := "http"
			if cfg.UseSSL {
				scheme = "https"
			}
			base = scheme + "://" + base
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
		client:        client,
		logger:        logger,
	}, nil
}

// Upload writes r under a fresh key and returns the object's public URL.
// size may be -1 when the length is not known up front.
// Every failure wraps domain.ErrUploadFailed.
func (s *Store) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: empty body", domain.ErrUploadFailed)
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := objectKey(name)
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %w", domain.ErrUploadFailed, err)
	}

	u := s.objectURL(key)
	s.logger.InfoContext(ctx, "photo uploaded", "bucket", s.bucket, "key", key, "url", u)
	return u, nil
}

// ensureBucket creates the bucket with a public-read policy if it is missing.
func (s *Store) ensureBucket(ctx context.Context) error {
	s.bucketMu.Lock()
	defer s.bucketMu.Unlock()
	if s.bucketReady {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, s.bucket)
		if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
			return fmt.Errorf("set bucket policy: %w", err)
		}
		s.logger.InfoContext(ctx, "bucket created", "bucket", s.bucket)
	}

	s.bucketReady = true
	return nil
}

func (s *Store) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, strings.TrimLeft(key, "/"))
}

// objectKey returns a unique key that keeps the extension of the uploaded file name.
func objectKey(name string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(name)))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\ ") {
		ext = ""
	}
	return keyPrefix + "/" + uuid.NewString() + ext
}

func hostOf(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}

// Unconfigured rejects every upload. It stands in when no bucket is configured.
type Unconfigured struct{}

// Upload always fails with domain.ErrUploadFailed.
func (Unconfigured) Upload(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", fmt.Errorf("%w: media store is not configured", domain.ErrUploadFailed)
}

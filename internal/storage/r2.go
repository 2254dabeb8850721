package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// R2Config holds the credentials and bucket for an S3-compatible
// Cloudflare R2 endpoint.
type R2Config struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
}

// R2Store is an ObjectStore backed by an S3-compatible bucket.
type R2Store struct {
	client *minio.Client
	bucket string
}

// NewR2Store connects to the R2 endpoint and verifies the bucket is
// reachable. A backend that cannot be reached is an error here, not a
// nil client to be discovered later.
func NewR2Store(ctx context.Context, cfg R2Config) (*R2Store, error) {
	endpoint := fmt.Sprintf("%s.r2.cloudflarestorage.com", cfg.AccountID)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("reaching bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return &R2Store{client: client, bucket: cfg.Bucket}, nil
}

// Put stores an object, overwriting unconditionally.
func (s *R2Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("putting object %q: %w", key, err)
	}
	return nil
}

// Get opens an object for reading.
func (s *R2Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting object %q: %w", key, err)
	}

	// GetObject is lazy; Stat forces the request so a missing key
	// surfaces here instead of on first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("getting object %q: %w", key, err)
	}

	return obj, nil
}

// Delete removes an object. Missing keys are not an error.
func (s *R2Store) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("deleting object %q: %w", key, err)
	}
	return nil
}

// List returns every object key under prefix.
func (s *R2Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("listing prefix %q: %w", prefix, info.Err)
		}
		keys = append(keys, info.Key)
	}
	return keys, nil
}

// ListPrefixes returns the immediate subfolder names under prefix.
func (s *R2Store) ListPrefixes(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("listing prefix %q: %w", prefix, info.Err)
		}
		// Non-recursive listings report subfolders as keys with a
		// trailing slash.
		if !strings.HasSuffix(info.Key, "/") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(info.Key, prefix), "/")
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

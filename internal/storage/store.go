package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a requested object does not exist.
// Callers that treat an absent document as "empty" check for it with
// errors.Is and substitute a default.
var ErrNotFound = errors.New("object not found")

// ObjectStore is a minimal S3-like byte-blob store keyed by path strings.
type ObjectStore interface {
	// Put stores an object, overwriting unconditionally.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Get opens an object for reading. Returns an error wrapping
	// ErrNotFound when the key does not exist. Caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every object key under prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// ListPrefixes returns the unique immediate subfolder names under
	// prefix, without the prefix or trailing slash. Order is not
	// guaranteed.
	ListPrefixes(ctx context.Context, prefix string) ([]string, error)
}

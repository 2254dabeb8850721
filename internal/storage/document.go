package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DocumentStore holds JSON documents as individual objects. There are
// no partial updates: callers fetch, mutate and write whole documents.
type DocumentStore struct {
	store ObjectStore
}

// NewDocumentStore wraps an ObjectStore with JSON document operations.
func NewDocumentStore(store ObjectStore) *DocumentStore {
	return &DocumentStore{store: store}
}

// Objects returns the underlying object store.
func (d *DocumentStore) Objects() ObjectStore {
	return d.store
}

// PutJSON serializes v and overwrites the document at key.
func (d *DocumentStore) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document %q: %w", key, err)
	}

	if err := d.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return fmt.Errorf("writing document %q: %w", key, err)
	}
	return nil
}

// GetJSON reads and decodes the document at key into v. Returns an
// error wrapping ErrNotFound when the document does not exist.
func (d *DocumentStore) GetJSON(ctx context.Context, key string, v any) error {
	rc, err := d.store.Get(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("reading document %q: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding document %q: %w", key, err)
	}
	return nil
}

// UpdateJSON is the single read-modify-write entry point for shared
// documents. It fetches the document at key, applies mutate, and writes
// the whole document back. The write is unconditional: concurrent
// updates are last-write-wins. If the document is absent and init is
// non-nil, init's result is mutated instead; with a nil init the
// ErrNotFound is returned.
func UpdateJSON[T any](ctx context.Context, d *DocumentStore, key string, init func() *T, mutate func(*T) error) (*T, error) {
	doc := new(T)
	err := d.GetJSON(ctx, key, doc)
	if err != nil {
		if !errors.Is(err, ErrNotFound) || init == nil {
			return nil, err
		}
		doc = init()
	}

	if err := mutate(doc); err != nil {
		return nil, err
	}

	if err := d.PutJSON(ctx, key, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

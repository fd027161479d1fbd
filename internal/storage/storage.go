// Package storage implements the two interchangeable file backends and the
// object-store clients the blob backend is built on.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"filegate/internal/model"
)

// ErrObjectNotFound is returned by ObjectStore when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// StorageError reports a fault in a backend medium. Not-found is never a StorageError.
type StorageError struct {
	Backend model.StorageType
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s backend %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func newStorageError(backend model.StorageType, op string, err error) error {
	return &StorageError{Backend: backend, Op: op, Err: err}
}

// Backend stores file bytes and metadata in one medium.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Type names the medium; it is stamped on every FileMetadata the backend returns.
	Type() model.StorageType
	// Store persists meta and exactly meta.Size bytes read from content.
	Store(ctx context.Context, meta model.FileMetadata, content io.Reader) error
	// Retrieve returns the record for id, or nil with a nil error when absent.
	Retrieve(ctx context.Context, id string) (*model.FileRecord, error)
	// Delete removes id and reports whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// List enumerates every stored file. Each call re-enumerates.
	List(ctx context.Context) ([]model.FileMetadata, error)
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// ObjectStore is a reusable, S3-compatible object storage client interface.
// Methods use context and streaming readers; no local disk is used.
type ObjectStore interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns object info without fetching content.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

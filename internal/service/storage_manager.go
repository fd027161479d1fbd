package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filegate/internal/idgen"
	"filegate/internal/model"
	"filegate/internal/storage"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrFileRequired       = errors.New("file is required")
	ErrInvalidStorageType = errors.New("invalid storage type")
)

// StorageManager is the single entry point over both backends.
type StorageManager interface {
	// Store assigns a fresh id and writes the upload to the backend named by storageType.
	Store(ctx context.Context, upload *model.FileUpload, storageType model.StorageType, previewEnabled bool, path string) (*model.FileMetadata, error)

	// Retrieve looks the id up in the structured backend, then in the blob backend.
	// It returns nil, nil when neither holds the id.
	Retrieve(ctx context.Context, id string) (*model.FileRecord, error)

	// Delete removes id from whichever backend holds it and reports whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns structured-backend files followed by blob-backend files.
	List(ctx context.Context) ([]model.FileMetadata, error)
}

// storageManager is a concrete implementation of StorageManager.
// It holds no mutable state; backends provide their own concurrency safety.
type storageManager struct {
	structured storage.Backend
	blob       storage.Backend
	newID      func() (string, error)
	now        func() time.Time
}

// NewStorageManager constructs a StorageManager that owns both backends.
func NewStorageManager(structured, blob storage.Backend) StorageManager {
	return &storageManager{
		structured: structured,
		blob:       blob,
		newID:      idgen.New,
		now:        time.Now,
	}
}

// ordered returns the backends in lookup order.
func (m *storageManager) ordered() [2]storage.Backend {
	return [2]storage.Backend{m.structured, m.blob}
}

func (m *storageManager) backendFor(t model.StorageType) (storage.Backend, error) {
	switch t {
	case model.StorageStructured:
		return m.structured, nil
	case model.StorageBlob:
		return m.blob, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStorageType, t)
	}
}

func (m *storageManager) Store(ctx context.Context, upload *model.FileUpload, storageType model.StorageType, previewEnabled bool, path string) (*model.FileMetadata, error) {
	if upload == nil || upload.Content == nil {
		return nil, ErrFileRequired
	}
	if upload.Size < 0 {
		return nil, fmt.Errorf("%w: negative size", ErrFileRequired)
	}
	backend, err := m.backendFor(storageType)
	if err != nil {
		return nil, err
	}

	id, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// Postgres timestamps keep microseconds; match that so every backend round-trips.
	meta := model.FileMetadata{
		ID:             id,
		Filename:       upload.Filename,
		Path:           path,
		Size:           upload.Size,
		ContentType:    contentType,
		StorageType:    storageType,
		PreviewEnabled: previewEnabled,
		CreatedAt:      m.now().UTC().Truncate(time.Microsecond),
	}

	if err := backend.Store(ctx, meta, upload.Content); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (m *storageManager) Retrieve(ctx context.Context, id string) (*model.FileRecord, error) {
	if id == "" {
		return nil, nil
	}
	for _, b := range m.ordered() {
		rec, err := b.Retrieve(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *storageManager) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrIDRequired
	}
	for _, b := range m.ordered() {
		ok, err := b.Delete(ctx, id)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (m *storageManager) List(ctx context.Context) ([]model.FileMetadata, error) {
	out := make([]model.FileMetadata, 0)
	for _, b := range m.ordered() {
		items, err := b.List(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

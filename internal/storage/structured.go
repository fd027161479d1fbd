package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"filegate/internal/model"
	"filegate/internal/repository"
)

// StructuredBackend keeps bytes inline in a database row via FileRepository.
// The medium has no streaming reads, so Retrieve holds one file in memory.
type StructuredBackend struct {
	repo repository.FileRepository
}

// NewStructuredBackend wraps a FileRepository.
func NewStructuredBackend(repo repository.FileRepository) *StructuredBackend {
	return &StructuredBackend{repo: repo}
}

var _ Backend = (*StructuredBackend)(nil)

func (s *StructuredBackend) Type() model.StorageType { return model.StorageStructured }

func (s *StructuredBackend) Store(ctx context.Context, meta model.FileMetadata, content io.Reader) error {
	// Read one byte past the declared size to detect oversized streams.
	data, err := io.ReadAll(io.LimitReader(content, meta.Size+1))
	if err != nil {
		return newStorageError(model.StorageStructured, "store", fmt.Errorf("read content: %w", err))
	}
	if int64(len(data)) != meta.Size {
		return newStorageError(model.StorageStructured, "store",
			fmt.Errorf("content length mismatch: declared %d, got at least %d", meta.Size, len(data)))
	}

	meta.StorageType = model.StorageStructured
	if _, err := s.repo.Create(ctx, &repository.FileRow{Meta: meta, Content: data}); err != nil {
		return newStorageError(model.StorageStructured, "store", err)
	}
	return nil
}

func (s *StructuredBackend) Retrieve(ctx context.Context, id string) (*model.FileRecord, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, newStorageError(model.StorageStructured, "retrieve", err)
	}
	row.Meta.StorageType = model.StorageStructured
	return &model.FileRecord{
		FileMetadata: row.Meta,
		Content:      io.NopCloser(bytes.NewReader(row.Content)),
	}, nil
}

func (s *StructuredBackend) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, newStorageError(model.StorageStructured, "delete", err)
	}
	return deleted, nil
}

func (s *StructuredBackend) List(ctx context.Context) ([]model.FileMetadata, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, newStorageError(model.StorageStructured, "list", err)
	}
	return items, nil
}

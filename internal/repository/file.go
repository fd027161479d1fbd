// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres).
package repository

import (
	"context"

	"filegate/internal/model"
)

// FileRow is a file record whose bytes live inline in the row.
type FileRow struct {
	Meta    model.FileMetadata
	Content []byte
}

// FileRepository defines data access for inline-stored files using SQL queries only.
// No business logic here, strictly persistence operations.
type FileRepository interface {
	// Create inserts a new file row including its bytes.
	Create(ctx context.Context, row *FileRow) (*model.FileMetadata, error)

	// FindByID returns the row for id. It returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*FileRow, error)

	// List returns the metadata of every row, without content.
	List(ctx context.Context) ([]model.FileMetadata, error)

	// Delete removes a row by id and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

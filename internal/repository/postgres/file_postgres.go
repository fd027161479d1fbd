package postgres

import (
	"context"
	"database/sql"

	"filegate/internal/model"
	"filegate/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

// Create inserts a new file row and returns the stored metadata.
func (r *FilePostgres) Create(ctx context.Context, row *repository.FileRow) (*model.FileMetadata, error) {
	const q = `
		INSERT INTO files (id, filename, path, size, content_type, preview_enabled, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, filename, path, size, content_type, preview_enabled, created_at
	`
	m := row.Meta
	var out model.FileMetadata
	if err := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.Filename,
		m.Path,
		m.Size,
		m.ContentType,
		m.PreviewEnabled,
		row.Content,
		m.CreatedAt,
	).Scan(
		&out.ID,
		&out.Filename,
		&out.Path,
		&out.Size,
		&out.ContentType,
		&out.PreviewEnabled,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	out.CreatedAt = out.CreatedAt.UTC()
	out.StorageType = model.StorageStructured
	return &out, nil
}

// FindByID fetches a single row, content included.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*repository.FileRow, error) {
	const q = `
		SELECT id, filename, path, size, content_type, preview_enabled, created_at, content
		FROM files
		WHERE id = $1
	`
	var row repository.FileRow
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.Meta.ID,
		&row.Meta.Filename,
		&row.Meta.Path,
		&row.Meta.Size,
		&row.Meta.ContentType,
		&row.Meta.PreviewEnabled,
		&row.Meta.CreatedAt,
		&row.Content,
	); err != nil {
		return nil, err
	}
	row.Meta.CreatedAt = row.Meta.CreatedAt.UTC()
	row.Meta.StorageType = model.StorageStructured
	return &row, nil
}

// List returns metadata for every row, newest first.
func (r *FilePostgres) List(ctx context.Context) ([]model.FileMetadata, error) {
	const q = `
		SELECT id, filename, path, size, content_type, preview_enabled, created_at
		FROM files
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FileMetadata, 0)
	for rows.Next() {
		var m model.FileMetadata
		if err := rows.Scan(
			&m.ID,
			&m.Filename,
			&m.Path,
			&m.Size,
			&m.ContentType,
			&m.PreviewEnabled,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		m.StorageType = model.StorageStructured
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a row by id.
func (r *FilePostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

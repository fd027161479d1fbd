package model

import (
	"fmt"
	"io"
	"time"
)

// StorageType names the backend that owns a file's bytes.
type StorageType string

const (
	// StorageBlob keeps raw bytes in an object store next to a sidecar record.
	StorageBlob StorageType = "blob"
	// StorageStructured keeps bytes inline within a database row.
	StorageStructured StorageType = "structured"
)

// ParseStorageType converts user input into a StorageType.
func ParseStorageType(s string) (StorageType, error) {
	switch StorageType(s) {
	case StorageBlob:
		return StorageBlob, nil
	case StorageStructured:
		return StorageStructured, nil
	default:
		return "", fmt.Errorf("unknown storage type %q", s)
	}
}

// FileMetadata describes a stored file. It is immutable after upload.
type FileMetadata struct {
	ID             string      `json:"id"`
	Filename       string      `json:"filename"`
	Path           string      `json:"path"`
	Size           int64       `json:"size"`
	ContentType    string      `json:"content_type"`
	StorageType    StorageType `json:"storage_type"`
	PreviewEnabled bool        `json:"preview_enabled"`
	CreatedAt      time.Time   `json:"created_at"`
}

// FileUpload is an incoming file as handed over by the HTTP layer.
// Content is read exactly once.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// FileRecord bundles metadata with a single-pass byte stream.
// The caller must close Content.
type FileRecord struct {
	FileMetadata
	Content io.ReadCloser `json:"-"`
}

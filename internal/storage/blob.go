package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"filegate/internal/model"
)

const (
	blobContentPrefix = "files/"
	blobSidecarPrefix = "meta/"
	blobSidecarSuffix = ".json"
)

// BlobBackend keeps raw bytes in an ObjectStore and a JSON sidecar record
// next to them:
//
//	files/{id}       file bytes
//	meta/{id}.json   FileMetadata
type BlobBackend struct {
	store ObjectStore
}

// NewBlobBackend wraps an ObjectStore.
func NewBlobBackend(store ObjectStore) *BlobBackend {
	return &BlobBackend{store: store}
}

var _ Backend = (*BlobBackend)(nil)

func (b *BlobBackend) Type() model.StorageType { return model.StorageBlob }

// Store uploads the bytes first, then the sidecar. A failed sidecar write
// removes the uploaded bytes again.
func (b *BlobBackend) Store(ctx context.Context, meta model.FileMetadata, content io.Reader) error {
	meta.StorageType = model.StorageBlob
	key := contentKey(meta.ID)

	if _, err := b.store.Put(ctx, key, content, PutObjectOptions{
		Size:        meta.Size,
		ContentType: meta.ContentType,
	}); err != nil {
		return newStorageError(model.StorageBlob, "store", fmt.Errorf("put content: %w", err))
	}

	sidecar, err := json.Marshal(meta)
	if err != nil {
		return newStorageError(model.StorageBlob, "store", b.rollback(ctx, key, err))
	}
	if _, err := b.store.Put(ctx, sidecarKey(meta.ID), bytes.NewReader(sidecar), PutObjectOptions{
		Size:        int64(len(sidecar)),
		ContentType: "application/json",
	}); err != nil {
		return newStorageError(model.StorageBlob, "store", b.rollback(ctx, key, fmt.Errorf("put sidecar: %w", err)))
	}
	return nil
}

func (b *BlobBackend) rollback(ctx context.Context, key string, cause error) error {
	if delErr := b.store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("%v; rollback delete failed: %v", cause, delErr)
	}
	return cause
}

// Retrieve reads the sidecar and opens a stream over the bytes.
func (b *BlobBackend) Retrieve(ctx context.Context, id string) (*model.FileRecord, error) {
	meta, err := b.readSidecar(ctx, id)
	if err != nil {
		return nil, newStorageError(model.StorageBlob, "retrieve", err)
	}
	if meta == nil {
		return nil, nil
	}

	body, _, err := b.store.Get(ctx, contentKey(id))
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			err = fmt.Errorf("content missing for %s", id)
		}
		return nil, newStorageError(model.StorageBlob, "retrieve", err)
	}
	return &model.FileRecord{FileMetadata: *meta, Content: body}, nil
}

// Delete removes bytes and sidecar. The sidecar goes last so a partial
// failure leaves the file listed and retryable.
func (b *BlobBackend) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := b.store.Stat(ctx, sidecarKey(id)); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return false, nil
		}
		return false, newStorageError(model.StorageBlob, "delete", err)
	}
	if err := b.store.Delete(ctx, contentKey(id)); err != nil {
		return false, newStorageError(model.StorageBlob, "delete", fmt.Errorf("delete content: %w", err))
	}
	if err := b.store.Delete(ctx, sidecarKey(id)); err != nil {
		return false, newStorageError(model.StorageBlob, "delete", fmt.Errorf("delete sidecar: %w", err))
	}
	return true, nil
}

// List reads every sidecar under meta/. Sidecars removed between the
// listing and the read are skipped.
func (b *BlobBackend) List(ctx context.Context) ([]model.FileMetadata, error) {
	objs, err := b.store.List(ctx, blobSidecarPrefix)
	if err != nil {
		return nil, newStorageError(model.StorageBlob, "list", err)
	}

	out := make([]model.FileMetadata, 0, len(objs))
	for _, obj := range objs {
		id, ok := idFromSidecarKey(obj.Key)
		if !ok {
			continue
		}
		meta, err := b.readSidecar(ctx, id)
		if err != nil {
			return nil, newStorageError(model.StorageBlob, "list", err)
		}
		if meta != nil {
			out = append(out, *meta)
		}
	}
	return out, nil
}

func (b *BlobBackend) readSidecar(ctx context.Context, id string) (*model.FileMetadata, error) {
	rc, _, err := b.store.Get(ctx, sidecarKey(id))
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sidecar: %w", err)
	}
	defer rc.Close()

	var meta model.FileMetadata
	if err := json.NewDecoder(rc).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode sidecar %s: %w", id, err)
	}
	meta.StorageType = model.StorageBlob
	return &meta, nil
}

func contentKey(id string) string { return blobContentPrefix + id }

func sidecarKey(id string) string { return blobSidecarPrefix + id + blobSidecarSuffix }

func idFromSidecarKey(key string) (string, bool) {
	if !strings.HasPrefix(key, blobSidecarPrefix) || !strings.HasSuffix(key, blobSidecarSuffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, blobSidecarPrefix), blobSidecarSuffix)
	return id, id != "" && !strings.Contains(id, "/")
}

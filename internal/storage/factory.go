package storage

import (
	"context"
	"fmt"

	"filegate/internal/config"
)

// NewObjectStore picks the object store client named by cfg.Driver.
func NewObjectStore(ctx context.Context, cfg config.BlobConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case "", "minio":
		return NewMinIO(ctx, cfg)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

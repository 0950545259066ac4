package service

import (
	"context"
	"fmt"

	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/pkg/logger"
)

// OpenStores builds the raw and output stores for the configured backend.
// For s3 both share one client and bucket and differ by key prefix.
func OpenStores(ctx context.Context, cfg *config.Config, log logger.Logger) (raw, out storage.Store, err error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		raw = storage.NewFileStore(cfg.RawRoot, storage.WithLogger(log))
		out = storage.NewFileStore(cfg.OutputRoot, storage.WithLogger(log))
		return raw, out, nil
	case config.BackendS3:
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		raw = storage.NewS3Store(client, cfg.S3Bucket,
			storage.WithLogger(log), storage.WithPrefix(storage.Join(cfg.S3Prefix, cfg.RawRoot)))
		out = storage.NewS3Store(client, cfg.S3Bucket,
			storage.WithLogger(log), storage.WithPrefix(storage.Join(cfg.S3Prefix, cfg.OutputRoot)))
		return raw, out, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown backend %q", ErrStorage, cfg.StorageBackend)
	}
}

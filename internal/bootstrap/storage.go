package bootstrap

import (
	"context"
	"fmt"

	"github.com/stockhaus/stockhaus-backend/config"
	"github.com/stockhaus/stockhaus-backend/internal/storage/images"
	"github.com/stockhaus/stockhaus-backend/internal/storage/minio"
	"github.com/stockhaus/stockhaus-backend/internal/storage/s3"
)

// OpenImageBackend returns the object store selected by STORAGE_DRIVER.
func OpenImageBackend(ctx context.Context, cfg config.StorageConfig) (images.Backend, error) {
	switch cfg.Driver {
	case "", "minio":
		c, err := minio.New(ctx, minio.Options{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
			PublicURL: cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case "s3":
		c, err := s3.New(ctx, s3.Options{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			PublicURL: cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

package imagestore

import (
	"context"
	"fmt"
)

type UploadResult struct {
	FileID string
	URL    string
}

// Store is the external host images are materialized at.
type Store interface {
	Upload(ctx context.Context, data []byte, fileName, folder string) (UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}

type Config struct {
	Provider string

	ImageKit ImageKitConfig
	S3       S3Config
}

func New(cfg Config) (Store, error) {
	switch cfg.Provider {
	case "", "imagekit":
		return NewImageKitStore(cfg.ImageKit), nil
	case "s3":
		return NewS3Store(cfg.S3), nil
	default:
		return nil, fmt.Errorf("unsupported image store provider: %s", cfg.Provider)
	}
}

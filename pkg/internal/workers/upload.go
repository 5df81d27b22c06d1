package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/imagestore"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/rs/zerolog/log"
)

const defaultStoreTimeout = 10 * time.Second

type ImageMaterializer interface {
	MaterializeImage(ctx context.Context, imageID, fileID string) error
}

// UploadWorker moves the bytes of pending images to the image store and
// records the file id it gets back.
type UploadWorker struct {
	store   imagestore.Store
	images  ImageMaterializer
	timeout time.Duration
}

func NewUploadWorker(store imagestore.Store, images ImageMaterializer, timeout time.Duration) *UploadWorker {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &UploadWorker{store: store, images: images, timeout: timeout}
}

func (v *UploadWorker) Handle(ctx context.Context, task mq.UploadTask) error {
	uploadCtx, cancel := context.WithTimeout(ctx, v.timeout)
	result, err := v.store.Upload(uploadCtx, task.Payload, task.FileName, task.Folder)
	cancel()
	if err != nil {
		return fmt.Errorf("upload image %s: %w", task.ImageID, err)
	}

	if err := v.images.MaterializeImage(ctx, task.ImageID, result.FileID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return mq.Permanent(err)
		}
		return err
	}

	log.Info().
		Str("image", task.ImageID).
		Str("file", result.FileID).
		Msg("Uploaded image to the image store.")
	return nil
}

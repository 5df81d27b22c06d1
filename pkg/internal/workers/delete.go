package workers

import (
	"context"
	"time"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/imagestore"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"github.com/rs/zerolog/log"
)

type DeleteWorker struct {
	store   imagestore.Store
	timeout time.Duration
}

func NewDeleteWorker(store imagestore.Store, timeout time.Duration) *DeleteWorker {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &DeleteWorker{store: store, timeout: timeout}
}

func (v *DeleteWorker) Handle(ctx context.Context, task mq.DeleteTask) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if err := v.store.Delete(ctx, task.FileID); err != nil {
		return err
	}

	log.Info().Str("file", task.FileID).Msg("Deleted image from the image store.")
	return nil
}

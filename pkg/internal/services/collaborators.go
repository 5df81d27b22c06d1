package services

import (
	"context"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/models"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
)

// TaskPublisher hands image tasks to the broker.
type TaskPublisher interface {
	PublishUpload(ctx context.Context, task mq.UploadTask) error
	PublishDelete(ctx context.Context, task mq.DeleteTask) error
}

// UserDirectory resolves account ids to their public profiles.
// Ids unknown to the directory are simply absent from the result.
type UserDirectory interface {
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}

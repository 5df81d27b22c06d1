package grpc

import (
	"context"
	"time"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/samber/lo"
)

func (v *App) CreateTopic(ctx context.Context, in *CreateTopicRequest) (*CreatedResponse, error) {
	id, err := v.topics.CreateTopic(ctx, in.Name, in.Slug, in.UserID)
	if err != nil {
		return nil, toStatus("create topic", err)
	}
	return &CreatedResponse{ID: id}, nil
}

func (v *App) UpdateTopic(ctx context.Context, in *UpdateTopicRequest) (*UpdatedResponse, error) {
	if err := v.topics.UpdateTopic(ctx, in.ID, in.Name, in.Slug, in.UserID); err != nil {
		return nil, toStatus("update topic", err)
	}
	return &UpdatedResponse{Success: true}, nil
}

func (v *App) DeleteTopic(ctx context.Context, in *DeleteOneRequest) (*DeletedResponse, error) {
	if err := v.topics.DeleteTopic(ctx, in.ID, in.UserID); err != nil {
		return nil, toStatus("delete topic", err)
	}
	return &DeletedResponse{Success: true}, nil
}

func (v *App) DeleteTopics(ctx context.Context, in *DeleteManyRequest) (*DeletedResponse, error) {
	if err := v.topics.DeleteTopics(ctx, in.IDs, in.UserID); err != nil {
		return nil, toStatus("delete topics", err)
	}
	return &DeletedResponse{Success: true}, nil
}

func (v *App) RestoreTopic(ctx context.Context, in *RestoreOneRequest) (*RestoredResponse, error) {
	if err := v.topics.RestoreTopic(ctx, in.ID, in.UserID); err != nil {
		return nil, toStatus("restore topic", err)
	}
	return &RestoredResponse{Success: true}, nil
}

func (v *App) RestoreTopics(ctx context.Context, in *RestoreManyRequest) (*RestoredResponse, error) {
	if err := v.topics.RestoreTopics(ctx, in.IDs, in.UserID); err != nil {
		return nil, toStatus("restore topics", err)
	}
	return &RestoredResponse{Success: true}, nil
}

func (v *App) PermanentlyDeleteTopic(ctx context.Context, in *PermanentlyDeleteOneRequest) (*DeletedResponse, error) {
	if err := v.topics.PermanentlyDeleteTopic(ctx, in.ID); err != nil {
		return nil, toStatus("permanently delete topic", err)
	}
	return &DeletedResponse{Success: true}, nil
}

func (v *App) PermanentlyDeleteTopics(ctx context.Context, in *PermanentlyDeleteManyRequest) (*DeletedResponse, error) {
	if err := v.topics.PermanentlyDeleteTopics(ctx, in.IDs); err != nil {
		return nil, toStatus("permanently delete topics", err)
	}
	return &DeletedResponse{Success: true}, nil
}

func (v *App) GetAllTopicsAdmin(ctx context.Context, _ *GetAllTopicsAdminRequest) (*TopicsAdminResponse, error) {
	topics, err := v.topics.ListTopicsForAdmin(ctx)
	if err != nil {
		return nil, toStatus("get all topics", err)
	}

	return &TopicsAdminResponse{
		Topics: lo.Map(topics, func(item services.TopicAdminView, _ int) TopicAdminResponse {
			return TopicAdminResponse{
				ID:        item.ID,
				Name:      item.Name,
				Slug:      item.Slug,
				IsDeleted: item.IsDeleted,
				CreatedAt: item.CreatedAt.Format(time.RFC3339),
				UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
				CreatedBy: item.CreatedBy,
				UpdatedBy: item.UpdatedBy,
			}
		}),
	}, nil
}

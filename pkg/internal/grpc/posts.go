package grpc

import (
	"context"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/samber/lo"
)

func (v *App) CreatePost(ctx context.Context, in *CreatePostRequest) (*CreatedResponse, error) {
	id, err := v.posts.CreatePost(ctx, services.CreatePostInput{
		TopicID:     in.TopicID,
		Title:       in.Title,
		Content:     in.Content,
		IsPublished: in.IsPublished,
		Images: lo.Map(in.Images, func(item CreateImageRequest, _ int) services.ImageInput {
			return services.ImageInput{
				Data:      item.Data,
				FileName:  item.FileName,
				SortOrder: item.SortOrder,
			}
		}),
		ActorID: in.UserID,
	})
	if err != nil {
		return nil, toStatus("create post", err)
	}
	return &CreatedResponse{ID: id}, nil
}

package grpc

import "git.solsynth.dev/hypernet/scribe/pkg/internal/models"

type CreateTopicRequest struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	UserID string `json:"user_id"`
}

type UpdateTopicRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	UserID string `json:"user_id"`
}

type DeleteOneRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type DeleteManyRequest struct {
	IDs    []string `json:"ids"`
	UserID string   `json:"user_id"`
}

type RestoreOneRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type RestoreManyRequest struct {
	IDs    []string `json:"ids"`
	UserID string   `json:"user_id"`
}

type PermanentlyDeleteOneRequest struct {
	ID string `json:"id"`
}

type PermanentlyDeleteManyRequest struct {
	IDs []string `json:"ids"`
}

type GetAllTopicsAdminRequest struct{}

type TopicAdminResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	IsDeleted bool         `json:"is_deleted"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	CreatedBy *models.User `json:"created_by,omitempty"`
	UpdatedBy *models.User `json:"updated_by,omitempty"`
}

type TopicsAdminResponse struct {
	Topics []TopicAdminResponse `json:"topics"`
}

// CreateImageRequest carries the raw image, encoded as base64 in JSON.
type CreateImageRequest struct {
	Data      []byte `json:"data"`
	FileName  string `json:"file_name"`
	SortOrder int    `json:"sort_order"`
}

type CreatePostRequest struct {
	TopicID     string               `json:"topic_id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	IsPublished bool                 `json:"is_published"`
	Images      []CreateImageRequest `json:"images"`
	UserID      string               `json:"user_id"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type UpdatedResponse struct {
	Success bool `json:"success"`
}

type DeletedResponse struct {
	Success bool `json:"success"`
}

type RestoredResponse struct {
	Success bool `json:"success"`
}

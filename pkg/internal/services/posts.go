package services

import (
	"context"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/models"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostConfig struct {
	// RequireActiveTopic rejects posts for soft deleted topics.
	RequireActiveTopic bool
}

type PostService struct {
	db        *gorm.DB
	publisher TaskPublisher
	images    ImageConfig
	config    PostConfig
}

func NewPostService(db *gorm.DB, publisher TaskPublisher, images ImageConfig, config PostConfig) *PostService {
	return &PostService{db: db, publisher: publisher, images: images, config: config}
}

type ImageInput struct {
	Data      []byte `json:"data" validate:"required,min=1"`
	FileName  string `json:"file_name"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

type CreatePostInput struct {
	TopicID     string       `json:"topic_id" validate:"required"`
	Title       string       `json:"title" validate:"required,max=255"`
	Content     string       `json:"content"`
	IsPublished bool         `json:"is_published"`
	Images      []ImageInput `json:"images" validate:"dive"`
	ActorID     string       `json:"actor_id"`
}

// CreatePost stores the post and its pending images in one transaction and
// queues one upload task per image after the transaction is committed.
func (v *PostService) CreatePost(ctx context.Context, input CreatePostInput) (string, error) {
	if err := validateInput("create post", input); err != nil {
		return "", err
	}

	post := models.Post{
		Title:       input.Title,
		Content:     input.Content,
		Language:    DetectLanguage(input.Content),
		IsPublished: input.IsPublished,
		CreatedBy:   input.ActorID,
		UpdatedBy:   input.ActorID,
		TopicID:     input.TopicID,
	}
	post.ID = uuid.NewString()
	post.Slug = SlugOr(input.Title, post.ID)
	if input.IsPublished {
		post.PublishedAt = lo.ToPtr(time.Now())
	}

	tasks := make([]mq.UploadTask, 0, len(input.Images))
	for _, item := range input.Images {
		fileName := v.images.ImageFileName(post.Slug, item.SortOrder, item.FileName)
		image := models.Image{
			URL:       v.images.ImageURL(fileName),
			SortOrder: item.SortOrder,
			PostID:    post.ID,
		}
		image.ID = uuid.NewString()
		post.Images = append(post.Images, image)
		tasks = append(tasks, mq.UploadTask{
			ImageID:  image.ID,
			Payload:  item.Data,
			FileName: fileName,
			Folder:   v.images.Folder,
		})
	}

	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topicQuery := tx.Model(&models.Topic{}).Where("id = ?", input.TopicID)
		if v.config.RequireActiveTopic {
			topicQuery = topicQuery.Where("is_deleted = ?", false)
		}
		var count int64
		if err := topicQuery.Count(&count).Error; err != nil {
			return err
		} else if count == 0 {
			return fmt.Errorf("topic %s: %w", input.TopicID, ErrNotFound)
		}

		if err := tx.Model(&models.Post{}).Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
			return err
		} else if count > 0 {
			return fmt.Errorf("post slug %q: %w", post.Slug, ErrAlreadyExists)
		}

		if err := tx.Omit(clause.Associations).Create(&post).Error; err != nil {
			return err
		}
		if len(post.Images) > 0 {
			return tx.Create(&post.Images).Error
		}
		return nil
	})
	if err != nil {
		return "", mapDatabaseError(err, "create post")
	}

	for _, task := range tasks {
		if err := v.publisher.PublishUpload(ctx, task); err != nil {
			log.Error().Err(err).
				Str("post", post.ID).
				Str("image", task.ImageID).
				Msg("An error occurred when dispatching image upload task, the image will stay pending.")
		}
	}

	return post.ID, nil
}

func (v *PostService) GetPost(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := v.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&post).Error
	return post, mapDatabaseError(err, fmt.Sprintf("post %s", id))
}

func (v *PostService) GetImage(ctx context.Context, id string) (models.Image, error) {
	var image models.Image
	err := v.db.WithContext(ctx).Where("id = ?", id).First(&image).Error
	return image, mapDatabaseError(err, fmt.Sprintf("image %s", id))
}

// MaterializeImage records the file id returned by the image store.
// The url computed at creation time is left untouched, so repeating the
// call for the same image is harmless.
func (v *PostService) MaterializeImage(ctx context.Context, imageID, fileID string) error {
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image models.Image
		if err := tx.Where("id = ?", imageID).First(&image).Error; err != nil {
			return err
		}
		return tx.Model(&image).Update("external_file_id", fileID).Error
	})
	return mapDatabaseError(err, fmt.Sprintf("materialize image %s", imageID))
}

// ListStalePendingImages returns images still waiting for their upload
// after the given duration.
func (v *PostService) ListStalePendingImages(ctx context.Context, olderThan time.Duration) ([]models.Image, error) {
	var images []models.Image
	err := v.db.WithContext(ctx).
		Where("external_file_id IS NULL AND created_at < ?", time.Now().Add(-olderThan)).
		Order("created_at ASC").
		Find(&images).Error
	return images, mapDatabaseError(err, "list pending images")
}

// AuditPendingImages is run periodically to surface uploads that never
// completed.
func (v *PostService) AuditPendingImages(olderThan time.Duration) {
	images, err := v.ListStalePendingImages(context.Background(), olderThan)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when auditing pending images.")
		return
	}
	if len(images) == 0 {
		log.Debug().Msg("No stale pending images found.")
		return
	}

	log.Warn().
		Int("count", len(images)).
		Strs("images", lo.Map(images, func(item models.Image, _ int) string { return item.ID })).
		Dur("threshold", olderThan).
		Msg("Found images that are still pending upload.")
}

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
)

type TopicService struct {
	db        *gorm.DB
	directory UserDirectory
	publisher TaskPublisher
}

func NewTopicService(db *gorm.DB, directory UserDirectory, publisher TaskPublisher) *TopicService {
	return &TopicService{db: db, directory: directory, publisher: publisher}
}

// TopicAdminView is a topic with its creator and last editor resolved.
type TopicAdminView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	IsDeleted bool         `json:"is_deleted"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	CreatedBy *models.User `json:"created_by,omitempty"`
	UpdatedBy *models.User `json:"updated_by,omitempty"`
}

func (v *TopicService) GetTopic(ctx context.Context, id string) (models.Topic, error) {
	var topic models.Topic
	err := v.db.WithContext(ctx).Where("id = ?", id).First(&topic).Error
	return topic, mapDatabaseError(err, fmt.Sprintf("topic %s", id))
}

func (v *TopicService) CreateTopic(ctx context.Context, name, slug, actorID string) (string, error) {
	topic := models.Topic{
		Name:      name,
		CreatedBy: actorID,
		UpdatedBy: actorID,
	}
	topic.ID = uuid.NewString()
	if len(slug) > 0 {
		topic.Slug = slug
	} else {
		topic.Slug = SlugOr(name, topic.ID)
	}

	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := topicSlugTaken(tx, topic.Slug, ""); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("topic slug %q: %w", topic.Slug, ErrAlreadyExists)
		}
		return tx.Create(&topic).Error
	})
	if err != nil {
		return "", mapDatabaseError(err, "create topic")
	}

	return topic.ID, nil
}

// UpdateTopic only writes the fields that differ from the stored row.
// An empty slug keeps the current one.
func (v *TopicService) UpdateTopic(ctx context.Context, id, name, slug, actorID string) error {
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&topic).Error; err != nil {
			return err
		}

		changes := make(map[string]any)
		if topic.Name != name {
			changes["name"] = name
		}
		if len(slug) > 0 && topic.Slug != slug {
			if taken, err := topicSlugTaken(tx, slug, topic.ID); err != nil {
				return err
			} else if taken {
				return fmt.Errorf("topic slug %q: %w", slug, ErrAlreadyExists)
			}
			changes["slug"] = slug
		}
		if topic.UpdatedBy != actorID {
			changes["updated_by"] = actorID
		}
		if len(changes) == 0 {
			return nil
		}

		return tx.Model(&topic).Updates(changes).Error
	})
	return mapDatabaseError(err, fmt.Sprintf("update topic %s", id))
}

func (v *TopicService) DeleteTopic(ctx context.Context, id, actorID string) error {
	return v.toggleTopic(ctx, id, actorID, true)
}

func (v *TopicService) RestoreTopic(ctx context.Context, id, actorID string) error {
	return v.toggleTopic(ctx, id, actorID, false)
}

func (v *TopicService) DeleteTopics(ctx context.Context, ids []string, actorID string) error {
	return v.toggleTopics(ctx, ids, actorID, true)
}

func (v *TopicService) RestoreTopics(ctx context.Context, ids []string, actorID string) error {
	return v.toggleTopics(ctx, ids, actorID, false)
}

func (v *TopicService) toggleTopic(ctx context.Context, id, actorID string, deleted bool) error {
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.Where("id = ? AND is_deleted = ?", id, !deleted).First(&topic).Error; err != nil {
			return err
		}

		changes := map[string]any{"is_deleted": deleted}
		if topic.UpdatedBy != actorID {
			changes["updated_by"] = actorID
		}
		return tx.Model(&topic).Updates(changes).Error
	})
	return mapDatabaseError(err, fmt.Sprintf("toggle topic %s", id))
}

// toggleTopics flips every topic in ids or none of them.
func (v *TopicService) toggleTopics(ctx context.Context, ids []string, actorID string, deleted bool) error {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return nil
	}

	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Topic{}).
			Where("id IN ? AND is_deleted = ?", ids, !deleted).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(ids) {
			return fmt.Errorf("%d of %d topics are not in the expected state: %w", len(ids)-int(count), len(ids), ErrNotFound)
		}

		return tx.Model(&models.Topic{}).
			Where("id IN ?", ids).
			Updates(map[string]any{"is_deleted": deleted, "updated_by": actorID}).Error
	})
	return mapDatabaseError(err, "toggle topics")
}

func (v *TopicService) PermanentlyDeleteTopic(ctx context.Context, id string) error {
	return v.PermanentlyDeleteTopics(ctx, []string{id})
}

// PermanentlyDeleteTopics removes soft deleted topics together with their
// posts and images. Files of materialized images are queued for removal
// from the image store once the rows are gone.
func (v *TopicService) PermanentlyDeleteTopics(ctx context.Context, ids []string) error {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return nil
	}

	var fileIDs []string
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Topic{}).
			Where("id IN ? AND is_deleted = ?", ids, true).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(ids) {
			return fmt.Errorf("%d of %d topics are not soft deleted: %w", len(ids)-int(count), len(ids), ErrNotFound)
		}

		var postIDs []string
		if err := tx.Model(&models.Post{}).Where("topic_id IN ?", ids).Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			var images []models.Image
			if err := tx.Where("post_id IN ?", postIDs).Find(&images).Error; err != nil {
				return err
			}
			fileIDs = lo.FilterMap(images, func(item models.Image, _ int) (string, bool) {
				return lo.FromPtr(item.ExternalFileID), item.ExternalFileID != nil
			})

			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Image{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id IN ?", ids).Delete(&models.Topic{}).Error
	})
	if err != nil {
		return mapDatabaseError(err, "permanently delete topics")
	}

	for _, fileID := range fileIDs {
		if err := v.publisher.PublishDelete(ctx, mq.DeleteTask{FileID: fileID}); err != nil {
			log.Error().Err(err).Str("file", fileID).Msg("An error occurred when dispatching image delete task.")
		}
	}

	return nil
}

// ListTopicsForAdmin resolves every actor referenced by the topics in one
// directory lookup.
func (v *TopicService) ListTopicsForAdmin(ctx context.Context) ([]TopicAdminView, error) {
	var topics []models.Topic
	if err := v.db.WithContext(ctx).Order("created_at DESC").Find(&topics).Error; err != nil {
		return nil, mapDatabaseError(err, "list topics")
	}
	if len(topics) == 0 {
		return []TopicAdminView{}, nil
	}

	actorIDs := lo.Uniq(lo.FlatMap(topics, func(item models.Topic, _ int) []string {
		return []string{item.CreatedBy, item.UpdatedBy}
	}))
	users, err := v.directory.GetUsersByIDs(ctx, actorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve topic actors: %w", err)
	}

	lookup := func(id string) *models.User {
		if user, ok := users[id]; ok {
			return &user
		}
		return nil
	}

	return lo.Map(topics, func(item models.Topic, _ int) TopicAdminView {
		return TopicAdminView{
			ID:        item.ID,
			Name:      item.Name,
			Slug:      item.Slug,
			IsDeleted: item.IsDeleted,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
			CreatedBy: lookup(item.CreatedBy),
			UpdatedBy: lookup(item.UpdatedBy),
		}
	}), nil
}

func topicSlugTaken(tx *gorm.DB, slug, exceptID string) (bool, error) {
	query := tx.Model(&models.Topic{}).Where("slug = ?", slug)
	if len(exceptID) > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

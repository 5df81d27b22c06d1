package models

import "time"

type Post struct {
	AuditInfo

	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Slug        string     `json:"slug" gorm:"type:varchar(255);uniqueIndex:posts_slug_key;not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Language    string     `json:"language" gorm:"type:varchar(8)"`
	IsPublished bool       `json:"is_published" gorm:"not null;default:false"`
	PublishedAt *time.Time `json:"published_at"`
	IsDeleted   bool       `json:"is_deleted" gorm:"not null;default:false"`
	CreatedBy   string     `json:"created_by" gorm:"type:char(36);not null"`
	UpdatedBy   string     `json:"updated_by" gorm:"type:char(36);not null"`

	TopicID string  `json:"topic_id" gorm:"type:char(36);not null;index"`
	Images  []Image `json:"images,omitempty" gorm:"foreignKey:PostID"`
}

package models

type Topic struct {
	AuditInfo

	Name      string `json:"name" gorm:"type:varchar(150);not null"`
	Slug      string `json:"slug" gorm:"type:varchar(150);uniqueIndex:topics_slug_key;not null"`
	IsDeleted bool   `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedBy string `json:"created_by" gorm:"type:char(36);not null"`
	UpdatedBy string `json:"updated_by" gorm:"type:char(36);not null"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:TopicID"`
}

package models

// ImageState describes how far an image has come in materialization.
// There is no failure state: a failed upload simply stays pending.
type ImageState = string

const (
	ImageStatePending      = ImageState("PENDING")
	ImageStateMaterialized = ImageState("MATERIALIZED")
)

// Image is a post attachment whose URL is computed before the bytes
// exist at the image store. ExternalFileID is filled in by the upload worker.
type Image struct {
	AuditInfo

	URL            string  `json:"url" gorm:"type:varchar(255);not null"`
	ExternalFileID *string `json:"external_file_id" gorm:"type:varchar(255)"`
	SortOrder      int     `json:"sort_order" gorm:"not null"`

	PostID string `json:"post_id" gorm:"type:char(36);not null;index"`
}

func (v Image) State() ImageState {
	if v.ExternalFileID != nil {
		return ImageStateMaterialized
	}
	return ImageStatePending
}

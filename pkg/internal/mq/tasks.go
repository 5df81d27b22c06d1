package mq

const (
	ExchangeName = "image_exchange"

	UploadRoutingKey = "image.upload"
	DeleteRoutingKey = "image.delete"

	UploadQueue = "upload_queue"
	DeleteQueue = "delete_queue"
)

// UploadTask asks the upload worker to materialize the bytes of one image.
// Payload is carried as base64 on the wire.
type UploadTask struct {
	ImageID  string `json:"imageId" validate:"required"`
	Payload  []byte `json:"payload" validate:"required"`
	FileName string `json:"fileName" validate:"required"`
	Folder   string `json:"folder"`
}

// DeleteTask asks the delete worker to remove a file from the image store.
type DeleteTask struct {
	FileID string `json:"fileId" validate:"required"`
}

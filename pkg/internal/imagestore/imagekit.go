package imagestore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"
	"github.com/samber/lo"
)

type ImageKitConfig struct {
	PublicKey   string
	PrivateKey  string
	UrlEndpoint string
}

type ImageKitStore struct {
	client *imagekit.ImageKit
}

func NewImageKitStore(cfg ImageKitConfig) *ImageKitStore {
	return &ImageKitStore{
		client: imagekit.NewFromParams(imagekit.NewParams{
			PrivateKey:  cfg.PrivateKey,
			PublicKey:   cfg.PublicKey,
			UrlEndpoint: cfg.UrlEndpoint,
		}),
	}
}

// Upload keeps the given file name so the stored file ends up at the url
// computed when the post was created.
func (v *ImageKitStore) Upload(ctx context.Context, data []byte, fileName, folder string) (UploadResult, error) {
	params := uploader.UploadParam{
		FileName:          fileName,
		UseUniqueFileName: lo.ToPtr(false),
	}
	if len(folder) > 0 {
		params.Folder = folder
	}

	resp, err := v.client.Uploader.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload %s to imagekit: %w", fileName, err)
	}

	return UploadResult{FileID: resp.Data.FileId, URL: resp.Data.Url}, nil
}

func (v *ImageKitStore) Delete(ctx context.Context, fileID string) error {
	if _, err := v.client.Media.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("delete %s from imagekit: %w", fileID, err)
	}
	return nil
}

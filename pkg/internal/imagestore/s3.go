package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base the stored objects are served from.
	PublicURL string
}

// S3Store keeps images in an S3 compatible bucket. The object key doubles
// as the external file id.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Store(cfg S3Config) *S3Store {
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		),
		UsePathStyle: true,
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

func (v *S3Store) Upload(ctx context.Context, data []byte, fileName, folder string) (UploadResult, error) {
	key := path.Join(strings.Trim(folder, "/"), fileName)

	input := &s3.PutObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType := mime.TypeByExtension(path.Ext(fileName)); len(contentType) > 0 {
		input.ContentType = aws.String(contentType)
	}

	if _, err := v.client.PutObject(ctx, input); err != nil {
		return UploadResult{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return UploadResult{FileID: key, URL: v.publicURL + "/" + key}, nil
}

func (v *S3Store) Delete(ctx context.Context, fileID string) error {
	if _, err := v.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(fileID),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", fileID, err)
	}
	return nil
}

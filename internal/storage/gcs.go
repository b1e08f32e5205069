package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// GCSUploader implements Uploader on a Cloud Storage bucket.
type GCSUploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewGCSUploader creates a GCSUploader around an initialized bucket handle.
func NewGCSUploader(bucket *gcs.BucketHandle, bucketName string) *GCSUploader {
	return &GCSUploader{bucket: bucket, bucketName: bucketName}
}

func (u *GCSUploader) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	w := u.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, path), nil
}

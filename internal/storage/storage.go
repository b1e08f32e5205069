// Package storage adapts the object storage collaborator behind a small
// upload capability.
package storage

import "context"

// Uploader writes a blob under a path and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

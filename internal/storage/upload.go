package storage

import (
	"context"
	"fmt"
	"os"
)

// Putter is anything that can store an object.
type Putter interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// UploadFile copies a local JSON file to key.
func UploadFile(ctx context.Context, dst Putter, key, path string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := dst.Put(ctx, key, body, "application/json"); err != nil {
		return fmt.Errorf("upload %s to %s: %w", path, key, err)
	}
	return nil
}

// Package storage persists uploaded images (banner art, cart design files,
// complaint photos) on the local filesystem or in S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded files and returns their storage paths.
type Store interface {
	// Save writes the file under the given directory and returns the stored
	// path (relative to the storage root).
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)

	// Delete removes a previously stored file.
	Delete(ctx context.Context, storedPath string) error
}

// Allowed upload extensions.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// AllowedExtension reports whether the filename carries a supported image
// extension.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(path.Ext(filename))]
}

// uniqueName builds a collision-free stored name preserving the original
// extension.
func uniqueName(filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file extension %q", ext)
	}
	return uuid.New().String() + ext, nil
}

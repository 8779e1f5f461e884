// Package storage persists uploaded hero images on local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Supported image content types and their file extensions.
var extensionByContentType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
}

var contentTypeByExtension = map[string]string{
	".png":  "image/png",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
}

// ImageStore reads and writes image files under a single directory. Filenames
// are server-assigned so user input never reaches the filesystem path.
type ImageStore struct {
	dir string
}

// NewImageStore creates the backing directory if needed and returns a store.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// ExtensionForContentType maps a request Content-Type to a file extension.
// The second return is false for unsupported types.
func ExtensionForContentType(contentType string) (string, bool) {
	// Strip any media type parameters (e.g. "; charset=...").
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	ext, ok := extensionByContentType[strings.TrimSpace(strings.ToLower(contentType))]
	return ext, ok
}

// ContentTypeForFilename maps a stored filename back to its Content-Type.
func ContentTypeForFilename(filename string) string {
	if ct, ok := contentTypeByExtension[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Save writes content to a freshly named file and returns the filename.
func (s *ImageStore) Save(ext string, content []byte) (string, error) {
	filename := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", filename, err)
	}
	return filename, nil
}

// Read returns the content of a stored image.
func (s *ImageStore) Read(filename string) ([]byte, error) {
	if filepath.Base(filename) != filename {
		return nil, fmt.Errorf("invalid image filename %q", filename)
	}
	return os.ReadFile(filepath.Join(s.dir, filename))
}

// Remove deletes a stored image. Missing files are not an error; the row is
// the source of truth and the file may already be gone.
func (s *ImageStore) Remove(filename string) error {
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid image filename %q", filename)
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Package storage is the file-storage collaborator for post images.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qalam/internal/utils"

	"github.com/google/uuid"
)

// ImageStore persists uploaded post images and removes replaced ones.
// Deletion failures are surfaced but treated as best-effort by callers.
type ImageStore interface {
	Put(filename string, data []byte) (string, error)
	Delete(ref string) error
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MaxImageSize caps uploads at 2 MiB, matching the form limit.
const MaxImageSize = 2 << 20

// LocalImageStore writes images under a single directory on disk.
type LocalImageStore struct {
	dir string
}

var _ ImageStore = (*LocalImageStore)(nil)

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Put stores image bytes under a fresh name derived from the original
// extension and returns the reference to persist on the post.
func (s *LocalImageStore) Put(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", utils.NewFieldError("image", "unsupported image type")
	}
	if len(data) > MaxImageSize {
		return "", utils.NewFieldError("image", "image exceeds the 2MB limit")
	}

	ref := uuid.New().String() + ext
	path := filepath.Join(s.dir, ref)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", utils.NewAppError(utils.ErrStorage, "failed to store image", err)
	}
	return ref, nil
}

// Delete removes a stored image. References that are external URLs are
// ignored, mirroring how imported posts keep remote images.
func (s *LocalImageStore) Delete(ref string) error {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(ref))); err != nil && !os.IsNotExist(err) {
		return utils.NewAppError(utils.ErrStorage, "failed to delete image", err)
	}
	return nil
}

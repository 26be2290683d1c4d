package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/decorlens/backend/internal/domain"
)

// FileStore serves images from a directory on the local filesystem
type FileStore struct {
	baseDir string
}

// NewFileStore creates a store rooted at baseDir
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Load reads the image at path relative to the base directory.
// Paths escaping the base directory are rejected.
func (s *FileStore) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return data, nil
}

func (s *FileStore) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimSpace(path))
	if clean == "/" {
		return "", fmt.Errorf("%w: empty image path", domain.ErrInvalidRequest)
	}
	return filepath.Join(s.baseDir, clean), nil
}

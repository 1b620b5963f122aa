package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes avatars to a local directory served as /uploads
type DiskStore struct {
	dir string
}

// NewDiskStore creates the uploads directory if needed
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the file under a random name and returns its public path
func (s *DiskStore) Save(_ context.Context, data []byte, ext, _ string) (string, error) {
	name := fmt.Sprintf("avatar-%s%s", uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}
	return "/uploads/" + name, nil
}

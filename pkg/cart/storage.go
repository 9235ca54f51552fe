package cart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists the serialized cart blob under a fixed name. Load returns
// (nil, nil) when no blob exists yet.
type Storage interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
}

// FileStorage keeps the cart blob as one JSON file per store name inside a
// directory, typically somewhere under the user's config dir.
type FileStorage struct {
	dir string
}

// NewFileStorage ensures the directory exists and returns the storage.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileStorage) Save(name string, data []byte) error {
	return os.WriteFile(f.path(name), data, 0o644)
}

func (f *FileStorage) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

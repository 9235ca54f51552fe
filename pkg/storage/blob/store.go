package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cometcontrol/comet-backend/pkg/config"
)

// Store is the opaque upload target: it accepts file bytes and hands back a
// URL the catalog can reference.
type Store interface {
	Put(ctx context.Context, kind, filename string, data []byte) (string, error)
	Ping(ctx context.Context) error
}

// Kind subdirectories mirror the site's asset taxonomy.
var kindDirs = map[string]string{
	"image":    "images/products",
	"model":    "models",
	"document": "documents",
	"software": "software",
}

var allowedExtensions = map[string][]string{
	"image":    {".webp", ".png", ".jpg", ".jpeg", ".svg"},
	"model":    {".glb", ".gltf"},
	"document": {".pdf"},
	"software": {".zip", ".exe", ".msi"},
}

var maxSizeMB = map[string]int{
	"image":    10,
	"model":    50,
	"document": 20,
	"software": 100,
}

var (
	ErrUnknownKind   = errors.New("unknown upload kind")
	ErrExtensionType = errors.New("file extension not allowed for kind")
	ErrTooLarge      = errors.New("file exceeds size limit for kind")
)

// DiskStore writes uploads under a local directory and serves them from a
// configured base URL.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore ensures the upload root exists and returns the store.
func NewDiskStore(cfg config.UploadConfig) (*DiskStore, error) {
	root := strings.TrimSpace(cfg.Dir)
	if root == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (s *DiskStore) Put(ctx context.Context, kind, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, ok := kindDirs[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionAllowed(kind, ext) {
		return "", fmt.Errorf("%w: %q", ErrExtensionType, ext)
	}

	if limit := maxSizeMB[kind]; len(data) > limit*1024*1024 {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	target := filepath.Join(s.root, filepath.FromSlash(dir))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("creating kind dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return s.baseURL + "/" + path.Join(dir, name), nil
}

// Ping verifies the upload root is writable.
func (s *DiskStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	probe, err := os.CreateTemp(s.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("upload dir not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

func extensionAllowed(kind, ext string) bool {
	for _, allowed := range allowedExtensions[kind] {
		if allowed == ext {
			return true
		}
	}
	return false
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cometcontrol/comet-backend/pkg/types"
)

// catalogFile is the on-disk document wrapping the product list.
type catalogFile struct {
	Products []types.Product `json:"products"`
}

// Repository reads and writes the flat-file product catalog. All access goes
// through a single mutex so concurrent admin writes cannot interleave.
type Repository struct {
	mu   sync.RWMutex
	path string
}

// NewRepository returns a repository backed by the JSON document at path.
// The file does not need to exist yet; reads of an absent file yield an
// empty catalog.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog data path required")
	}
	return &Repository{path: path}, nil
}

// All returns every product in the catalog, in file order.
func (r *Repository) All() ([]types.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	return doc.Products, nil
}

// Replace atomically swaps the full product list.
func (r *Repository) Replace(products []types.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(catalogFile{Products: products})
}

// Mutate applies fn to the current product list under the write lock and
// persists the result. fn returning an error aborts without writing.
func (r *Repository) Mutate(fn func(products []types.Product) ([]types.Product, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	updated, err := fn(doc.Products)
	if err != nil {
		return err
	}

	return r.write(catalogFile{Products: updated})
}

// Ping verifies that the catalog document is present and parseable.
func (r *Repository) Ping() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, err := r.read()
	return err
}

func (r *Repository) read() (catalogFile, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalogFile{}, nil
		}
		return catalogFile{}, fmt.Errorf("read catalog %s: %w", r.path, err)
	}

	var doc catalogFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return catalogFile{}, fmt.Errorf("parse catalog %s: %w", r.path, err)
	}
	return doc, nil
}

func (r *Repository) write(doc catalogFile) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

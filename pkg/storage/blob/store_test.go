package blob

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cometcontrol/comet-backend/pkg/config"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(config.UploadConfig{Dir: t.TempDir(), BaseURL: "/files"})
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	return store
}

func TestPutWritesFileAndReturnsURL(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Put(context.Background(), "image", "panel.webp", []byte("fake-webp"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasPrefix(url, "/files/images/products/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, ".webp") {
		t.Fatalf("expected original extension preserved, got %q", url)
	}

	rel := strings.TrimPrefix(url, "/files/")
	if _, err := os.Stat(filepath.Join(store.root, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
}

func TestPutRejectsUnknownKind(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Put(context.Background(), "archive", "x.zip", nil); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestPutRejectsDisallowedExtension(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Put(context.Background(), "document", "notes.docx", []byte("x")); !errors.Is(err, ErrExtensionType) {
		t.Fatalf("expected ErrExtensionType, got %v", err)
	}
}

func TestPutRejectsOversizedPayload(t *testing.T) {
	store := newTestStore(t)
	big := make([]byte, 11*1024*1024)
	if _, err := store.Put(context.Background(), "image", "big.png", big); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, maxSize int64) *DocumentStore {
	t.Helper()
	store, err := NewDocumentStore(t.TempDir(), "http://localhost:8080", maxSize)
	if err != nil {
		t.Fatalf("NewDocumentStore: %v", err)
	}
	return store
}

func TestSaveStoresFileAndReturnsURL(t *testing.T) {
	store := newTestStore(t, 1024)
	content := []byte("%PDF-1.4 fake pdf")

	document, err := store.Save(7, "referral.pdf", "application/pdf", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if document.FileName != "referral.pdf" {
		t.Fatalf("expected original file name kept, got %s", document.FileName)
	}
	if document.Size != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), document.Size)
	}
	if !strings.HasPrefix(document.URL, "http://localhost:8080/uploads/7/") {
		t.Fatalf("unexpected URL: %s", document.URL)
	}
	if !strings.HasSuffix(document.URL, ".pdf") {
		t.Fatalf("expected .pdf extension in URL: %s", document.URL)
	}

	// The file is on disk under the owner's directory.
	entries, err := os.ReadDir(filepath.Join(store.Dir(), "7"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored file, got %d", len(entries))
	}
}

func TestSaveRejectsDisallowedType(t *testing.T) {
	store := newTestStore(t, 1024)

	cases := []string{"text/html", "application/zip", "image/gif", ""}
	for _, contentType := range cases {
		_, err := store.Save(7, "x", contentType, 4, bytes.NewReader([]byte("test")))
		if !errors.Is(err, ErrInvalidFileType) {
			t.Fatalf("content type %q: expected ErrInvalidFileType, got %v", contentType, err)
		}
	}
}

func TestSaveRejectsOversizeDeclaration(t *testing.T) {
	store := newTestStore(t, 16)

	_, err := store.Save(7, "big.pdf", "application/pdf", 32, bytes.NewReader(make([]byte, 32)))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestSaveRejectsOversizeStream(t *testing.T) {
	store := newTestStore(t, 16)

	// Declared size lies; the stream is larger than the limit.
	_, err := store.Save(7, "big.pdf", "application/pdf", 8, bytes.NewReader(make([]byte, 64)))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	// Nothing is left behind on disk.
	entries, err := os.ReadDir(filepath.Join(store.Dir(), "7"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no stored files after rejection, got %d", len(entries))
	}
}

func TestSaveUniqueStoredNames(t *testing.T) {
	store := newTestStore(t, 1024)

	first, err := store.Save(7, "scan.png", "image/png", 4, bytes.NewReader([]byte("aaaa")))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := store.Save(7, "scan.png", "image/png", 4, bytes.NewReader([]byte("bbbb")))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if first.URL == second.URL {
		t.Fatal("two uploads of the same file name must get distinct URLs")
	}
}

package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds the upload limit")
	ErrInvalidFileType = errors.New("invalid file type")
)

// allowedContentTypes maps accepted upload MIME types to file extensions.
var allowedContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// StoredDocument describes an uploaded file and its public URL
type StoredDocument struct {
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// DocumentStore writes uploaded documents to local disk and serves them
// back under a public URL prefix.
type DocumentStore struct {
	dir     string
	baseURL string
	maxSize int64
}

func NewDocumentStore(dir, baseURL string, maxSize int64) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &DocumentStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Save validates and stores an uploaded file under the owner's directory.
// The stored name is unique; the original file name is only kept in the
// returned metadata.
func (s *DocumentStore) Save(ownerID uint, fileName, contentType string, size int64, r io.Reader) (*StoredDocument, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, ErrInvalidFileType
	}
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ownerDir := filepath.Join(s.dir, fmt.Sprintf("%d", ownerID))
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create owner directory: %w", err)
	}

	storedName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
	path := filepath.Join(ownerDir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	// LimitReader guards against clients lying about the declared size.
	written, err := io.Copy(dst, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written > s.maxSize {
		os.Remove(path)
		return nil, ErrFileTooLarge
	}

	return &StoredDocument{
		URL:         fmt.Sprintf("%s/uploads/%d/%s", s.baseURL, ownerID, storedName),
		FileName:    fileName,
		Size:        written,
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}, nil
}

// Dir returns the root directory documents are stored under
func (s *DocumentStore) Dir() string {
	return s.dir
}

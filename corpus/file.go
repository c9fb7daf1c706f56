package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/use-agent/scout/models"
)

// FileStore keeps the corpus as a pretty-printed JSON array.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the corpus file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the corpus. A missing or empty file is an empty corpus.
func (s *FileStore) Load(_ context.Context) ([]models.ScrapedProduct, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.ScrapedProduct{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.ScrapedProduct{}, nil
	}

	var records []models.ScrapedProduct
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corpus: decode %s: %w", s.path, err)
	}
	if records == nil {
		records = []models.ScrapedProduct{}
	}
	return records, nil
}

// Save writes records to a temporary file next to the corpus and renames
// it into place, so a failed write leaves the previous corpus intact.
func (s *FileStore) Save(_ context.Context, records []models.ScrapedProduct) error {
	if records == nil {
		records = []models.ScrapedProduct{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("corpus: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("corpus: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("corpus: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("corpus: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("corpus: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("corpus: close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("corpus: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("corpus: replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

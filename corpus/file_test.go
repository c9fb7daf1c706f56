package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/scout/config"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "scraped_products.json"))

	records, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFileStore_EmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped_products.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	records, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped_products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_SavePrettyJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "scraped_products.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, titled("A", "B")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"title\": \"A\","), string(data))
	assert.Contains(t, string(data), `"price": 100,`)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, titled("A", "B"), loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestFileStore_BootstrapThroughMerge(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "scraped_products.json"))
	ctx := context.Background()

	prior, err := s.Load(ctx)
	require.NoError(t, err)
	merged, added := Merge(titled("A", "B", "C", "D"), prior)
	require.NoError(t, s.Save(ctx, merged))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, added)
	assert.Len(t, loaded, 4)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, config.StorageConfig{Driver: "file", Path: filepath.Join(dir, "c.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, config.StorageConfig{Driver: "sqlite", Path: filepath.Join(dir, "c.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.StorageConfig{Driver: "mongo"})
	assert.Error(t, err)
}

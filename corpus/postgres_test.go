package corpus

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SCOUT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SCOUT_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, nil))
	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	merged, added := Merge(titled("B", "C"), titled("A", "B"))
	assert.Equal(t, 1, added)
	require.NoError(t, s.Save(ctx, merged))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, merged, loaded)
}

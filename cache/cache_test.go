package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/scout/models"
)

func req(term, category string, limit int) models.ScrapeRequest {
	return models.ScrapeRequest{SearchTerm: term, Category: category, Limit: limit}
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key(req("Laptops", "electronics", 10)), Key(req("laptops", "electronics", 10)))
	assert.NotEqual(t, Key(req("laptops", "electronics", 10)), Key(req("laptops", "electronics", 5)))
	assert.NotEqual(t, Key(req("laptops", "electronics", 10)), Key(req("laptops", "computers", 10)))
}

func TestGetSet(t *testing.T) {
	c := New(10)
	defer c.Close()

	k := Key(req("kettle", "kitchen", 10))
	want := &models.RunResult{RunID: "r1", Added: 2}
	c.Set(k, want)

	got, ok := c.Get(k, 60_000)
	require.True(t, ok)
	assert.Same(t, want, got)

	_, ok = c.Get(k, 0)
	assert.False(t, ok, "maxAge 0 disables lookup")

	_, ok = c.Get("missing", 60_000)
	assert.False(t, ok)
}

func TestGet_Expired(t *testing.T) {
	c := New(10)
	defer c.Close()

	c.Set("k", &models.RunResult{RunID: "r1"})
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("k", 1)
	assert.False(t, ok)
}

func TestSet_EvictsOldest(t *testing.T) {
	c := New(2)
	defer c.Close()

	c.Set("a", &models.RunResult{RunID: "a"})
	time.Sleep(time.Millisecond)
	c.Set("b", &models.RunResult{RunID: "b"})
	time.Sleep(time.Millisecond)
	c.Set("c", &models.RunResult{RunID: "c"})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a", 60_000)
	assert.False(t, ok)
	_, ok = c.Get("c", 60_000)
	assert.True(t, ok)
}

func TestPurgeAndEvictExpired(t *testing.T) {
	c := New(10)
	defer c.Close()

	c.Set("a", &models.RunResult{})
	c.evictExpired(time.Now().Add(time.Second))
	assert.Equal(t, 0, c.Len())

	c.Set("b", &models.RunResult{})
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

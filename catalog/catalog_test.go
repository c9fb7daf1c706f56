package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/models"
)

func testClient(url string) *Client {
	return New(config.CatalogConfig{
		BaseURL:    url + "/api/",
		ImportPath: "/admin/import",
		AdminToken: "tok",
		Owner:      "admin-1",
		Timeout:    5 * time.Second,
	})
}

func TestMapCategory(t *testing.T) {
	tests := map[string]string{
		"all":             "scraped",
		"electronics":     "electronics",
		"jewelery":        "jewelery",
		"mens-clothing":   "men's clothing",
		"womens-clothing": "women's clothing",
		" Electronics ":   "electronics",
		"garden":          "scraped",
		"":                "scraped",
	}
	for in, want := range tests {
		assert.Equal(t, want, MapCategory(in), "MapCategory(%q)", in)
	}
}

func TestImport(t *testing.T) {
	var got importPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/import", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"p-42"}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Import(context.Background(), models.ImportCandidate{
		Title:    "Kettle",
		Price:    1299,
		Image:    "https://img/k.jpg",
		Category: "mens-clothing",
	})
	require.NoError(t, err)
	assert.Equal(t, "p-42", res.ProductID)
	assert.Equal(t, "men's clothing", res.Category)
	assert.Equal(t, "men's clothing", got.Category)
	assert.Equal(t, "admin-1", got.User)
	assert.Equal(t, 1299.0, got.Price)
}

func TestImport_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not authorized as an admin"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Import(context.Background(), models.ImportCandidate{Title: "K", Price: 1})
	require.Error(t, err)
	se := models.AsScrapeError(err)
	require.NotNil(t, se)
	assert.Equal(t, models.ErrCodeImport, se.Code)
	assert.Equal(t, "Not authorized as an admin", se.Message)
}

func TestImport_InvalidCandidate(t *testing.T) {
	_, err := testClient("http://127.0.0.1:0").Import(context.Background(), models.ImportCandidate{Title: "K"})
	assert.Equal(t, models.ErrCodeInvalidInput, models.CodeOf(err))
}

func TestSeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p importPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p.Title == "Broken" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "seed-admin", p.User)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	rep, err := testClient(srv.URL).Seed(context.Background(), []models.ScrapedProduct{
		{Title: "A", Price: 10},
		{Title: "Broken", Price: 10},
		{Title: "C", Price: 10},
	}, "seed-admin")
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Imported: 2, Failed: 1}, rep)
}

func TestSeed_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := testClient("http://127.0.0.1:0").Seed(ctx, []models.ScrapedProduct{{Title: "A", Price: 1}}, "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.Imported)
}

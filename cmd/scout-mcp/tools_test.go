package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/scout/models"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestScrapeProducts(t *testing.T) {
	var got models.ScrapeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/scrape", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(models.ScrapeResponse{
			Success: true,
			Message: "Appended 1 new unique products. Corpus now contains a total of 1 products.",
			Result: &models.RunResult{
				RunID: "r1", Extracted: 1, Added: 1, Total: 1,
				Products: []models.ScrapedProduct{{Title: "Kettle", Price: 1299, Category: "kitchen"}},
			},
		})
	}))
	defer srv.Close()

	h := handleScrapeProducts(newAPIClient(srv.URL, "k"))
	res, err := h(context.Background(), callRequest(map[string]any{
		"search_term": "kettle", "category": "kitchen", "limit": 5,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "1. Kettle")
	assert.Equal(t, 5, got.Limit)
}

func TestScrapeProducts_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: &models.ErrorDetail{
			Code: models.ErrCodeRunInProgress, Message: "another scrape is already running",
		}})
	}))
	defer srv.Close()

	h := handleScrapeProducts(newAPIClient(srv.URL, "k"))
	res, err := h(context.Background(), callRequest(map[string]any{"search_term": "x", "category": "y"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), models.ErrCodeRunInProgress)
}

func TestScrapeProducts_MissingArgs(t *testing.T) {
	h := handleScrapeProducts(newAPIClient("http://127.0.0.1:0", "k"))
	res, err := h(context.Background(), callRequest(map[string]any{"search_term": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListStaged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kitchen", r.URL.Query().Get("category"))
		_ = json.NewEncoder(w).Encode(models.StagedResponse{
			Success:        true,
			Total:          2,
			Products:       []models.ScrapedProduct{{Title: "Kettle"}, {Title: "Kettle "}},
			NearDuplicates: []models.NearDuplicate{{First: "Kettle", Second: "Kettle ", Distance: 0}},
		})
	}))
	defer srv.Close()

	h := handleListStaged(newAPIClient(srv.URL, "k"))
	res, err := h(context.Background(), callRequest(map[string]any{"category": "kitchen"}))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "2 staged products")
	assert.Contains(t, text, "Likely duplicates")
}

func TestImportProduct(t *testing.T) {
	var got models.ImportCandidate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.ImportResponse{Success: true, ProductID: "p-9", Category: "electronics"})
	}))
	defer srv.Close()

	h := handleImportProduct(newAPIClient(srv.URL, "k"))
	res, err := h(context.Background(), callRequest(map[string]any{
		"title": "Kettle", "price": 1299.0, "image": "https://img/k.jpg", "category": "electronics",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "p-9")
	assert.Equal(t, 1299.0, got.Price)
}

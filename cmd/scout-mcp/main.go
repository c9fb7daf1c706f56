package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	apiURL := os.Getenv("SCOUT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("SCOUT_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "SCOUT_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"scout",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	registerTools(s, newAPIClient(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func registerTools(s *server.MCPServer, c *apiClient) {
	scrapeTool := mcp.NewTool("scrape_products",
		mcp.WithDescription("Search the storefront for a term, extract the organic product listings and stage new ones in the corpus. Runs a real browser and can take a minute."),
		mcp.WithString("search_term",
			mcp.Required(),
			mcp.Description("Free-text query typed into the storefront search box, e.g. 'laptops'"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category label stored on every extracted product, e.g. 'electronics'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of products to extract (default: 10, max: 100)"),
		),
		mcp.WithNumber("max_age",
			mcp.Description("Reuse an identical run finished within this many milliseconds"),
		),
	)
	s.AddTool(scrapeTool, handleScrapeProducts(c))

	listTool := mcp.NewTool("list_staged",
		mcp.WithDescription("List the staged product corpus awaiting curation, with likely duplicate titles flagged."),
		mcp.WithString("category",
			mcp.Description("Only list products with this category"),
		),
	)
	s.AddTool(listTool, handleListStaged(c))

	importTool := mcp.NewTool("import_product",
		mcp.WithDescription("Import one curated product into the storefront catalog."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Product title")),
		mcp.WithNumber("price", mcp.Required(), mcp.Description("Price, greater than zero")),
		mcp.WithString("image", mcp.Required(), mcp.Description("Absolute https image URL")),
		mcp.WithString("description", mcp.Description("Product description")),
		mcp.WithString("category",
			mcp.Description("Curated category"),
			mcp.Enum("all", "electronics", "jewelery", "mens-clothing", "womens-clothing"),
		),
	)
	s.AddTool(importTool, handleImportProduct(c))
}

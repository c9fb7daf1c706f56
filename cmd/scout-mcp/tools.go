package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/scout/models"
)

func handleScrapeProducts(c *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term, err := request.RequireString("search_term")
		if err != nil {
			return mcp.NewToolResultError("search_term is required"), nil
		}
		category, err := request.RequireString("category")
		if err != nil {
			return mcp.NewToolResultError("category is required"), nil
		}

		resp, err := c.scrape(ctx, models.ScrapeRequest{
			SearchTerm: term,
			Category:   category,
			Limit:      request.GetInt("limit", 0),
			MaxAge:     request.GetInt("max_age", 0),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scrape request failed: %v", err)), nil
		}
		if !resp.Success || resp.Result == nil {
			return mcp.NewToolResultError(errorText("scrape failed", resp.Error)), nil
		}

		res := resp.Result
		var sb strings.Builder
		fmt.Fprintf(&sb, "Run %s: %s\n", res.RunID, resp.Message)
		if resp.CacheStatus != "" {
			fmt.Fprintf(&sb, "Cache: %s\n", resp.CacheStatus)
		}
		fmt.Fprintf(&sb, "Extracted %d, added %d, corpus total %d\n\n", res.Extracted, res.Added, res.Total)
		writeProducts(&sb, res.Products)

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleListStaged(c *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := c.staged(ctx, request.GetString("category", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("staged request failed: %v", err)), nil
		}
		if !resp.Success {
			return mcp.NewToolResultError(errorText("listing staged products failed", resp.Error)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d staged products:\n\n", resp.Total)
		writeProducts(&sb, resp.Products)
		if len(resp.NearDuplicates) > 0 {
			sb.WriteString("\nLikely duplicates:\n")
			for _, d := range resp.NearDuplicates {
				fmt.Fprintf(&sb, "- %q ~ %q (distance %d)\n", d.First, d.Second, d.Distance)
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleImportProduct(c *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}
		price, err := request.RequireFloat("price")
		if err != nil {
			return mcp.NewToolResultError("price is required"), nil
		}
		image, err := request.RequireString("image")
		if err != nil {
			return mcp.NewToolResultError("image is required"), nil
		}

		resp, err := c.importProduct(ctx, models.ImportCandidate{
			Title:       title,
			Price:       price,
			Image:       image,
			Description: request.GetString("description", ""),
			Category:    request.GetString("category", "all"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("import request failed: %v", err)), nil
		}
		if !resp.Success {
			return mcp.NewToolResultError(errorText("import failed", resp.Error)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Imported %q as %s in category %q", title, resp.ProductID, resp.Category)), nil
	}
}

func writeProducts(sb *strings.Builder, products []models.ScrapedProduct) {
	for i, p := range products {
		fmt.Fprintf(sb, "%d. %s | %.2f | %s | %s\n", i+1, p.Title, p.Price, p.Category, p.Image)
	}
}

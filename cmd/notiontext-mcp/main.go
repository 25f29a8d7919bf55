package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scrapeResponse mirrors the notiontext API response models.
type scrapeResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func main() {
	apiURL := os.Getenv("NOTIONTEXT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	s := server.NewMCPServer(
		"notiontext",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	scrapeTool := mcp.NewTool("scrape_notion_page",
		mcp.WithDescription("Fetch a public Notion page, expand all collapsed toggles, and return its title and text content. Uses a headless browser, so collapsed and lazily rendered blocks are included."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The notion.so or notion.site URL of the page"),
		),
		mcp.WithString("format",
			mcp.Description("Content rendering: 'text' (default, blocks joined by blank lines) or 'markdown'"),
			mcp.Enum("text", "markdown"),
		),
	)

	s.AddTool(scrapeTool, handleScrapePage(apiURL))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapePage(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageURL, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		format := request.GetString("format", "")

		query := url.Values{"url": {pageURL}}
		if format != "" {
			query.Set("format", format)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
			apiURL+"/scrape?"+query.Encode(), nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var scrapeResp scrapeResponse
		if err := json.Unmarshal(respBody, &scrapeResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if resp.StatusCode != http.StatusOK {
			errMsg := scrapeResp.Error
			if errMsg == "" {
				errMsg = fmt.Sprintf("scrape failed with status %d", resp.StatusCode)
			}
			if scrapeResp.Details != "" {
				errMsg += ": " + scrapeResp.Details
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		result := fmt.Sprintf("Title: %s\nSource: %s\n\n%s",
			scrapeResp.Title, pageURL, scrapeResp.Content)
		return mcp.NewToolResultText(result), nil
	}
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/notiontext/config"
	"github.com/use-agent/notiontext/models"
	"github.com/use-agent/notiontext/notion"
	"github.com/use-agent/notiontext/scraper"
)

// Scrape returns the handler for GET /scrape.
//
// Orchestration flow:
//  1. Validate the url query parameter (present, recognized Notion host).
//  2. Acquire a browser session; acquisition failure is fatal.
//  3. DEFER: close the session on every exit path.
//  4. Run the scrape pipeline (navigate → wait → expand → extract).
//  5. Respond 200 with {title, content}, or 500 with {error, details}.
func Scrape(prov scraper.Provisioner, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageURL := c.Query("url")
		if pageURL == "" {
			c.IndentedJSON(http.StatusBadRequest, models.ErrorResponse{
				Error: `Missing "url" query parameter`,
			})
			return
		}
		if !notion.IsNotionURL(pageURL) {
			c.IndentedJSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Invalid Notion URL. Must contain notion.so or notion.site.",
			})
			return
		}

		format := c.DefaultQuery("format", notion.FormatText)
		if format != notion.FormatText && format != notion.FormatMarkdown {
			c.IndentedJSON(http.StatusBadRequest, models.ErrorResponse{
				Error: `Invalid "format" query parameter. Use "text" or "markdown".`,
			})
			return
		}

		sess, err := prov.Acquire(c.Request.Context())
		if err != nil {
			respondError(c, "Failed to launch browser session", err)
			return
		}
		defer func() { _ = sess.Close() }()

		result, err := notion.Scrape(c.Request.Context(), sess, pageURL, notion.Options{
			Nav:     cfg.Scraper,
			Toggle:  cfg.Toggle,
			Extract: cfg.Extract,
			Format:  format,
		})
		if err != nil {
			respondError(c, "Failed to scrape Notion page", err)
			return
		}

		c.IndentedJSON(http.StatusOK, result)
	}
}

// respondError logs the fault and writes the 500 error body. Typed errors
// keep their message; the wrapped fault becomes the details string.
func respondError(c *gin.Context, fallback string, err error) {
	slog.Error("scrape request failed", "url", c.Query("url"), "error", err)

	var scrapeErr *models.ScrapeError
	if errors.As(err, &scrapeErr) {
		resp := scrapeErr.ToResponse()
		if resp.Details == "" {
			resp.Details = fallback
		}
		c.IndentedJSON(http.StatusInternalServerError, resp)
		return
	}

	c.IndentedJSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   fallback,
		Details: err.Error(),
	})
}

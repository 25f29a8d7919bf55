package notion_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/notiontext/config"
	"github.com/use-agent/notiontext/models"
	"github.com/use-agent/notiontext/notion"
)

func pipelineOpts(mode, format string) notion.Options {
	return notion.Options{
		Nav: config.ScraperConfig{
			NavigationTimeout: 5 * time.Second,
			ReadyPolicy:       "domstable",
			ContentTimeout:    time.Second,
		},
		Toggle:  config.ToggleConfig{MaxIterations: 3},
		Extract: config.ExtractConfig{Mode: mode, Dedupe: true},
		Format:  format,
	}
}

func TestScrape_NavigationErrorIsFatal(t *testing.T) {
	navErr := models.NewScrapeError(models.ErrCodeNavigation, "navigation to target URL failed", errors.New("net::ERR_NAME_NOT_RESOLVED"))
	sess := &mockSession{
		NavigateFn: func(context.Context, string) error { return navErr },
	}

	_, err := notion.Scrape(context.Background(), sess, "https://acme.notion.site/p", pipelineOpts(notion.ModeHTML, notion.FormatText))

	require.Error(t, err)
	var scrapeErr *models.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, models.ErrCodeNavigation, scrapeErr.Code)
}

func TestScrape_ContentRootTimeoutIsFatal(t *testing.T) {
	markerErr := models.NewScrapeError(models.ErrCodeTimeout, "content root never appeared: "+notion.ContentRootSelector, context.DeadlineExceeded)
	sess := &mockSession{
		WaitForMarkerFn: func(ctx context.Context, selector string, timeout time.Duration) error {
			assert.Equal(t, notion.ContentRootSelector, selector)
			assert.Equal(t, time.Second, timeout)
			return markerErr
		},
	}

	_, err := notion.Scrape(context.Background(), sess, "https://acme.notion.site/p", pipelineOpts(notion.ModeHTML, notion.FormatText))

	require.Error(t, err)
	var scrapeErr *models.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, models.ErrCodeTimeout, scrapeErr.Code)
	// Expansion and extraction must not run after a fatal marker wait.
	assert.Equal(t, 0, sess.EvalCalls)
}

func TestScrape_HTMLModeExtractsFromRenderedPage(t *testing.T) {
	sess := &mockSession{
		HTMLFn: func(context.Context) (string, error) {
			return page("Roadmap", block("b1", "notion-text-block", "Q1 goals")+
				block("b2", "notion-text-block", "Q2 goals")), nil
		},
	}

	got, err := notion.Scrape(context.Background(), sess, "https://acme.notion.site/p", pipelineOpts(notion.ModeHTML, notion.FormatText))

	require.NoError(t, err)
	assert.Equal(t, "Roadmap", got.Title)
	assert.Equal(t, "Q1 goals\n\nQ2 goals", got.Content)
	// One expansion query (zero toggles) is still expected.
	assert.Equal(t, 1, sess.EvalCalls)
}

func TestScrape_MarkdownFormat(t *testing.T) {
	sess := &mockSession{
		HTMLFn: func(context.Context) (string, error) {
			return page("Notes", `<div data-block-id="b1"><h2>Heading</h2></div>`+
				block("b2", "notion-text-block", "plain paragraph")), nil
		},
	}

	got, err := notion.Scrape(context.Background(), sess, "https://acme.notion.site/p", pipelineOpts(notion.ModeInPage, notion.FormatMarkdown))

	require.NoError(t, err)
	assert.Equal(t, "Notes", got.Title)
	assert.Contains(t, got.Content, "## Heading")
	assert.Contains(t, got.Content, "plain paragraph")
}

func TestScrape_MarkdownFormatWithoutContentRoot(t *testing.T) {
	sess := &mockSession{
		HTMLFn: func(context.Context) (string, error) {
			return `<html><body><h1 class="notion-page-block">Bare</h1></body></html>`, nil
		},
	}

	got, err := notion.Scrape(context.Background(), sess, "https://acme.notion.site/p", pipelineOpts(notion.ModeInPage, notion.FormatMarkdown))

	require.NoError(t, err)
	assert.Equal(t, "Bare", got.Title)
	assert.Equal(t, "", got.Content)
}

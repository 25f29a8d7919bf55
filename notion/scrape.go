package notion

import (
	"context"

	"github.com/use-agent/notiontext/config"
	"github.com/use-agent/notiontext/models"
	"github.com/use-agent/notiontext/scraper"
)

// Output formats for Options.Format.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Extraction modes for config.ExtractConfig.Mode.
const (
	ModeInPage = "inpage"
	ModeHTML   = "html"
)

// Options bundles the per-request pipeline configuration.
type Options struct {
	Nav     config.ScraperConfig
	Toggle  config.ToggleConfig
	Extract config.ExtractConfig

	// Format selects the content rendering: FormatText (default) or
	// FormatMarkdown.
	Format string
}

// Scrape runs the full pipeline on an acquired session:
//
//  1. Navigate to the page, bounded by the navigation timeout.
//  2. Wait for readiness per the configured policy.
//  3. Wait for the Notion content root; expiry here is fatal.
//  4. Expand collapsed toggles (best-effort).
//  5. Extract title and body text.
//
// The caller owns the session and is responsible for closing it.
func Scrape(ctx context.Context, sess scraper.Session, pageURL string, opts Options) (*models.Extraction, error) {
	navCtx, cancel := context.WithTimeout(ctx, opts.Nav.NavigationTimeout)
	defer cancel()

	if err := sess.Navigate(navCtx, pageURL); err != nil {
		return nil, err
	}
	if err := sess.WaitReady(navCtx, opts.Nav.ReadyPolicy); err != nil {
		return nil, err
	}

	if err := sess.WaitForMarker(ctx, ContentRootSelector, opts.Nav.ContentTimeout); err != nil {
		return nil, err
	}

	ExpandToggles(ctx, sess, opts.Toggle)

	extractOpts := ExtractOptions{Dedupe: opts.Extract.Dedupe}

	switch {
	case opts.Format == FormatMarkdown:
		return scrapeMarkdown(ctx, sess, pageURL, extractOpts)
	case opts.Extract.Mode == ModeHTML:
		rawHTML, err := sess.HTML(ctx)
		if err != nil {
			return nil, err
		}
		return ExtractFromHTML(rawHTML, extractOpts)
	default:
		return ExtractInPage(ctx, sess, extractOpts)
	}
}

// scrapeMarkdown captures the rendered HTML once, takes the title from the
// block extractor, and renders the content root subtree as Markdown.
func scrapeMarkdown(ctx context.Context, sess scraper.Session, pageURL string, opts ExtractOptions) (*models.Extraction, error) {
	rawHTML, err := sess.HTML(ctx)
	if err != nil {
		return nil, err
	}

	result, err := ExtractFromHTML(rawHTML, opts)
	if err != nil {
		return nil, err
	}

	rootHTML, err := ContentRootHTML(rawHTML)
	if err != nil {
		return nil, err
	}
	if rootHTML == "" {
		result.Content = ""
		return result, nil
	}

	md, err := RenderMarkdown(rootHTML, pageURL)
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"markdown rendering failed",
			err,
		)
	}
	result.Content = md
	return result, nil
}

package notion

import (
	"context"

	"github.com/use-agent/notiontext/models"
	"github.com/use-agent/notiontext/scraper"
)

// ExtractOptions controls text extraction from the rendered page.
type ExtractOptions struct {
	// Dedupe skips blocks whose trimmed text exactly matches one already
	// emitted. Scoped per request.
	Dedupe bool
}

// snapshotJS is the in-page DOM snapshot. It is a remote call: the selectors
// arrive by value, the return value is plain data, and a fault here is
// independent of the orchestrator.
//
// Policy per block (direct-text-only): every block-marked element is kept
// regardless of nesting depth, but nested block-marked descendants are
// stripped before reading textContent, so text is emitted exactly once and
// at the right structural granularity.
const snapshotJS = `(titleSelectors, rootSelector, blockSelector, mediaFragments, dedupe) => {
	let title = "Untitled";
	for (const sel of titleSelectors) {
		const el = document.querySelector(sel);
		if (el && el.textContent && el.textContent.trim()) {
			title = el.textContent.trim();
			break;
		}
	}

	const root = document.querySelector(rootSelector);
	if (!root) return { title: title, content: "" };

	const hasMedia = (block) => {
		if (block.querySelector("img, svg, video, audio, iframe")) return true;
		const cls = typeof block.className === "string" ? block.className.toLowerCase() : "";
		return mediaFragments.some((f) => cls.includes(f));
	};
	const directText = (block) => {
		const clone = block.cloneNode(true);
		clone.querySelectorAll(blockSelector).forEach((n) => n.remove());
		return clone.textContent || "";
	};

	const seen = new Set();
	const parts = [];
	for (const block of root.querySelectorAll(blockSelector)) {
		if (hasMedia(block)) continue;
		const text = directText(block).trim();
		if (!text) continue;
		if (dedupe) {
			if (seen.has(text)) continue;
			seen.add(text);
		}
		parts.push(text);
	}
	return { title: title, content: parts.join("\n\n") };
}`

// ExtractInPage runs the DOM snapshot inside the loaded page and returns the
// title and block texts joined by blank lines, in document order.
func ExtractInPage(ctx context.Context, sess scraper.Session, opts ExtractOptions) (*models.Extraction, error) {
	res, err := sess.Eval(ctx, snapshotJS,
		titleSelectors, ContentRootSelector, BlockSelector, mediaClassFragments, opts.Dedupe)
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"in-page content snapshot failed",
			err,
		)
	}

	return &models.Extraction{
		Title:   res.Get("title").Str(),
		Content: res.Get("content").Str(),
	}, nil
}

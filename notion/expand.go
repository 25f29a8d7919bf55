package notion

import (
	"context"
	"log/slog"

	"github.com/use-agent/notiontext/config"
	"github.com/use-agent/notiontext/scraper"
)

// expandTogglesJS activates every collapsed toggle that is visible (non-zero
// bounding box, at most a few viewports below the fold) and not disabled,
// and returns the number activated. Runs inside the page context.
const expandTogglesJS = `(toggleSelector) => {
	let clicked = 0;
	for (const el of document.querySelectorAll(toggleSelector)) {
		if (el.disabled || el.getAttribute("aria-disabled") === "true") continue;
		const rect = el.getBoundingClientRect();
		if (rect.width === 0 || rect.height === 0) continue;
		if (rect.top > window.innerHeight * 3 || rect.bottom < -window.innerHeight) continue;
		el.click();
		clicked++;
	}
	return clicked;
}`

// ExpandToggles repeatedly activates collapsed toggles until none remain,
// the clicked count stops changing, or the iteration cap is reached.
// Expansion is best-effort: failures are logged and the pipeline continues
// with whatever content is currently expanded.
//
// On toggle-heavy pages this loop dominates request latency: each iteration
// pays IterationDelay so Notion can render the newly revealed blocks before
// the next query.
func ExpandToggles(ctx context.Context, sess scraper.Session, cfg config.ToggleConfig) {
	prev := -1
	for i := 0; i < cfg.MaxIterations; i++ {
		res, err := sess.Eval(ctx, expandTogglesJS, ToggleSelector)
		if err != nil {
			slog.Warn("toggle expansion failed, continuing with current content",
				"iteration", i, "error", err)
			return
		}

		clicked := res.Int()
		if clicked == 0 {
			return
		}
		// Plateau: the same toggles re-matched without revealing anything
		// new, so clicking them again will not make progress.
		if clicked == prev {
			slog.Debug("toggle expansion plateaued", "iteration", i, "clicked", clicked)
			return
		}
		prev = clicked

		if err := sess.Sleep(ctx, cfg.IterationDelay); err != nil {
			return
		}
	}
	slog.Debug("toggle expansion hit iteration cap", "iterations", cfg.MaxIterations)
}

package scraper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/use-agent/notiontext/models"
	"github.com/ysmood/gson"
)

// Readiness policies accepted by Session.WaitReady.
const (
	// ReadyDOMStable waits for the DOM to stop mutating (minimal parse).
	ReadyDOMStable = "domstable"

	// ReadyNetworkIdle waits for network quiescence.
	ReadyNetworkIdle = "networkidle"
)

// Provisioner acquires browser sessions. The rod-backed Scraper is the
// production implementation; tests substitute a mock.
type Provisioner interface {
	// Acquire returns a Session exclusively owned by the caller.
	Acquire(ctx context.Context) (Session, error)

	// Close releases the underlying browser resources.
	Close() error
}

// Session is a single browser page owned by one request. Implementations
// must tolerate Close being called exactly once on every exit path.
type Session interface {
	// Navigate drives the page to the URL.
	Navigate(ctx context.Context, url string) error

	// WaitReady blocks until the navigation satisfies the readiness policy.
	WaitReady(ctx context.Context, policy string) error

	// WaitForMarker blocks until an element matching the selector appears
	// in the DOM, or the timeout expires.
	WaitForMarker(ctx context.Context, selector string, timeout time.Duration) error

	// Eval runs a JS function inside the page and returns its plain-data
	// result. Arguments are passed by value into the page context.
	Eval(ctx context.Context, js string, args ...interface{}) (gson.JSON, error)

	// HTML returns the page's current rendered HTML.
	HTML(ctx context.Context) (string, error)

	// Sleep pauses for d or until the context is done.
	Sleep(ctx context.Context, d time.Duration) error

	// Close releases the page. Safe to call more than once.
	Close() error
}

// pageSession is the rod-backed Session. It borrows a page from the owning
// Scraper's pool and returns it on Close.
type pageSession struct {
	page      *rod.Page
	owner     *Scraper
	closeOnce sync.Once
}

var _ Session = (*pageSession)(nil)

func (s *pageSession) Navigate(ctx context.Context, url string) error {
	if err := s.page.Context(ctx).Navigate(url); err != nil {
		return categorizeError(err, "navigation to target URL failed")
	}
	return nil
}

func (s *pageSession) WaitReady(ctx context.Context, policy string) error {
	p := s.page.Context(ctx)
	switch policy {
	case ReadyNetworkIdle:
		wait := p.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
		wait()
		return nil
	default:
		if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return categorizeError(err, "page never reached a stable DOM")
			}
			// DOM-stable does not always converge on pages with animations;
			// proceed with the current DOM.
			slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
				"error", err,
			)
		}
		return nil
	}
}

func (s *pageSession) WaitForMarker(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := s.page.Context(waitCtx).Element(selector); err != nil {
		return categorizeError(err, "content root never appeared: "+selector)
	}
	return nil
}

func (s *pageSession) Eval(ctx context.Context, js string, args ...interface{}) (gson.JSON, error) {
	res, err := s.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return gson.New(nil), categorizeError(err, "in-page evaluation failed")
	}
	return res.Value, nil
}

func (s *pageSession) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", categorizeError(err, "failed to extract page HTML")
	}
	return html, nil
}

func (s *pageSession) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *pageSession) Close() error {
	s.closeOnce.Do(func() {
		s.owner.release(s.page)
	})
	return nil
}

// categorizeError wraps raw errors into typed ScrapeErrors so the API layer
// can report them with a meaningful message.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}

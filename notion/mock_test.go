package notion_test

import (
	"context"
	"time"

	"github.com/use-agent/notiontext/scraper"
	"github.com/ysmood/gson"
)

var _ scraper.Session = (*mockSession)(nil)

// mockSession is a function-field mock of scraper.Session.
type mockSession struct {
	NavigateFn      func(ctx context.Context, url string) error
	WaitReadyFn     func(ctx context.Context, policy string) error
	WaitForMarkerFn func(ctx context.Context, selector string, timeout time.Duration) error
	EvalFn          func(ctx context.Context, js string, args ...interface{}) (gson.JSON, error)
	HTMLFn          func(ctx context.Context) (string, error)

	EvalCalls int
	Closed    bool
}

func (m *mockSession) Navigate(ctx context.Context, url string) error {
	if m.NavigateFn != nil {
		return m.NavigateFn(ctx, url)
	}
	return nil
}

func (m *mockSession) WaitReady(ctx context.Context, policy string) error {
	if m.WaitReadyFn != nil {
		return m.WaitReadyFn(ctx, policy)
	}
	return nil
}

func (m *mockSession) WaitForMarker(ctx context.Context, selector string, timeout time.Duration) error {
	if m.WaitForMarkerFn != nil {
		return m.WaitForMarkerFn(ctx, selector, timeout)
	}
	return nil
}

func (m *mockSession) Eval(ctx context.Context, js string, args ...interface{}) (gson.JSON, error) {
	m.EvalCalls++
	if m.EvalFn != nil {
		return m.EvalFn(ctx, js, args...)
	}
	return gson.New(0), nil
}

func (m *mockSession) HTML(ctx context.Context) (string, error) {
	if m.HTMLFn != nil {
		return m.HTMLFn(ctx)
	}
	return "", nil
}

func (m *mockSession) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (m *mockSession) Close() error {
	m.Closed = true
	return nil
}

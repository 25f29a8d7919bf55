package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/use-agent/notiontext/models"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"deadline exceeded", context.DeadlineExceeded, models.ErrCodeTimeout},
		{"canceled", context.Canceled, models.ErrCodeTimeout},
		{"wrapped deadline", errors.Join(errors.New("navigate"), context.DeadlineExceeded), models.ErrCodeTimeout},
		{"other", errors.New("net::ERR_CONNECTION_REFUSED"), models.ErrCodeNavigation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizeError(tt.err, "msg")
			if got.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got.Code)
			}
			if !errors.Is(got, tt.err) {
				t.Error("wrapped error must remain reachable via errors.Is")
			}
		})
	}
}

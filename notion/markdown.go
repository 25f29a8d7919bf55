package notion

import (
	"net/url"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var (
	mdOnce sync.Once
	mdConv *converter.Converter
)

// markdownConverter returns the shared, goroutine-safe converter:
//
//   - base plugin: strips script, style, iframe, noscript, head, meta and
//     HTML comments.
//   - commonmark plugin: standard Markdown rendering.
//   - table plugin: keeps Notion tables as Markdown tables with minimal
//     cell padding.
func markdownConverter() *converter.Converter {
	mdOnce.Do(func() {
		mdConv = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		)
	})
	return mdConv
}

// RenderMarkdown converts the content root's HTML to Markdown. Relative
// links and image sources are resolved against the page URL's host so the
// output is self-contained.
func RenderMarkdown(rootHTML, pageURL string) (string, error) {
	domain := ""
	if u, err := url.Parse(pageURL); err == nil {
		domain = u.Host
	}
	return markdownConverter().ConvertString(rootHTML, converter.WithDomain(domain))
}

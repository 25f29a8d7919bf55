package notion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/notiontext/models"
	"golang.org/x/net/html"
)

// ExtractFromHTML applies the same extraction policy as the in-page snapshot
// to already-rendered HTML: direct-text-only block topology, media blocks
// skipped entirely, per-block trim, optional exact-text dedupe, blank-line
// join in document order.
func ExtractFromHTML(rawHTML string, opts ExtractOptions) (*models.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"failed to parse rendered HTML",
			err,
		)
	}

	result := &models.Extraction{Title: extractTitle(doc)}

	root := doc.Find(ContentRootSelector).First()
	if root.Length() == 0 {
		return result, nil
	}

	seen := make(map[string]struct{})
	var parts []string
	root.Find(BlockSelector).Each(func(_ int, block *goquery.Selection) {
		if hasMedia(block) {
			return
		}
		text := strings.TrimSpace(directText(block))
		if text == "" {
			return
		}
		if opts.Dedupe {
			if _, dup := seen[text]; dup {
				return
			}
			seen[text] = struct{}{}
		}
		parts = append(parts, text)
	})

	result.Content = strings.Join(parts, "\n\n")
	return result, nil
}

// ContentRootHTML returns the outer HTML of the content root, or the empty
// string when the page has no body content.
func ContentRootHTML(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", models.NewScrapeError(
			models.ErrCodeExtraction,
			"failed to parse rendered HTML",
			err,
		)
	}

	root := doc.Find(ContentRootSelector).First()
	if root.Length() == 0 {
		return "", nil
	}
	return goquery.OuterHtml(root)
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return "Untitled"
}

// hasMedia reports whether the block holds a media element anywhere in its
// subtree, or carries a media class fragment on the block element itself.
func hasMedia(block *goquery.Selection) bool {
	if block.Find(mediaTagSelector).Length() > 0 {
		return true
	}
	cls, _ := block.Attr("class")
	cls = strings.ToLower(cls)
	for _, fragment := range mediaClassFragments {
		if strings.Contains(cls, fragment) {
			return true
		}
	}
	return false
}

// directText collects the block's text with nested block-marked subtrees
// stripped, so each piece of text belongs to exactly one block.
func directText(block *goquery.Selection) string {
	var b strings.Builder
	for _, node := range block.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collectText(c, &b)
		}
	}
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if isBlockNode(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func isBlockNode(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == blockMarkerAttr {
			return true
		}
	}
	return false
}

package notion_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/notiontext/notion"
)

// page wraps body content in Notion-shaped markup with a title block.
func page(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><body>
<h1 class="notion-page-block">%s</h1>
<div class="notion-page-content">%s</div>
</body></html>`, title, body)
}

func block(id, class, inner string) string {
	return fmt.Sprintf(`<div data-block-id="%s" class="%s">%s</div>`, id, class, inner)
}

func TestExtractFromHTML_JoinsBlocksInDocumentOrder(t *testing.T) {
	body := block("b1", "notion-text-block", "first paragraph") +
		block("b2", "notion-text-block", "second paragraph") +
		block("b3", "notion-text-block", "third paragraph")

	got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: true})
	require.NoError(t, err)

	assert.Equal(t, "Doc", got.Title)
	assert.Equal(t, "first paragraph\n\nsecond paragraph\n\nthird paragraph", got.Content)
}

func TestExtractFromHTML_NestedBlocksEmitDirectTextOnly(t *testing.T) {
	inner := block("child", "notion-text-block", "nested detail")
	body := block("parent", "notion-toggle-block", "<span>toggle heading</span>"+inner)

	got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: true})
	require.NoError(t, err)

	// The parent contributes only its own text; the child's text appears
	// once, as its own entry.
	assert.Equal(t, "toggle heading\n\nnested detail", got.Content)
}

func TestExtractFromHTML_ImageOnlyBlockExcluded(t *testing.T) {
	body := block("b1", "notion-text-block", "before") +
		block("b2", "notion-text-block", `<img src="x.png" alt="diagram">`) +
		block("b3", "notion-text-block", "after")

	got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: true})
	require.NoError(t, err)

	assert.Equal(t, "before\n\nafter", got.Content)
}

func TestExtractFromHTML_MediaClassBlockExcluded(t *testing.T) {
	for _, class := range []string{
		"notion-image-block", "notion-video-block", "notion-audio-block",
		"notion-file-block", "notion-embed-block", "notion-bookmark-block",
	} {
		t.Run(class, func(t *testing.T) {
			body := block("b1", "notion-text-block", "kept") +
				block("b2", class, "media caption")

			got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: true})
			require.NoError(t, err)
			assert.Equal(t, "kept", got.Content)
		})
	}
}

func TestExtractFromHTML_SVGBlockExcluded(t *testing.T) {
	body := block("b1", "notion-text-block", "<svg viewBox=\"0 0 1 1\"></svg>") +
		block("b2", "notion-text-block", "text")

	got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: true})
	require.NoError(t, err)
	assert.Equal(t, "text", got.Content)
}

func TestExtractFromHTML_Dedupe(t *testing.T) {
	body := block("b1", "notion-text-block", "repeated line") +
		block("b2", "notion-text-block", "repeated line") +
		block("b3", "notion-text-block", "unique line")

	t.Run("enabled suppresses exact duplicates", func(t *testing.T) {
		got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: true})
		require.NoError(t, err)
		assert.Equal(t, "repeated line\n\nunique line", got.Content)
	})

	t.Run("disabled keeps both occurrences", func(t *testing.T) {
		got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: false})
		require.NoError(t, err)
		assert.Equal(t, "repeated line\n\nrepeated line\n\nunique line", got.Content)
	})
}

func TestExtractFromHTML_EmptyAndWhitespaceBlocksDropped(t *testing.T) {
	body := block("b1", "notion-text-block", "   \n\t  ") +
		block("b2", "notion-text-block", "") +
		block("b3", "notion-text-block", "  padded  ")

	got, err := notion.ExtractFromHTML(page("Doc", body), notion.ExtractOptions{Dedupe: true})
	require.NoError(t, err)

	// Trimmed, empties dropped.
	assert.Equal(t, "padded", got.Content)
}

func TestExtractFromHTML_MissingContentRoot(t *testing.T) {
	raw := `<html><body><h1 class="notion-page-block">Lonely Title</h1></body></html>`

	got, err := notion.ExtractFromHTML(raw, notion.ExtractOptions{Dedupe: true})
	require.NoError(t, err)

	assert.Equal(t, "Lonely Title", got.Title)
	assert.Equal(t, "", got.Content)
}

func TestExtractFromHTML_TitleFallbacks(t *testing.T) {
	t.Run("editable leaf fallback", func(t *testing.T) {
		raw := `<html><body>
<div data-content-editable-leaf="true">Leaf Title</div>
<div class="notion-page-content"></div>
</body></html>`
		got, err := notion.ExtractFromHTML(raw, notion.ExtractOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Leaf Title", got.Title)
	})

	t.Run("no title marker yields Untitled", func(t *testing.T) {
		raw := `<html><body><div class="notion-page-content"></div></body></html>`
		got, err := notion.ExtractFromHTML(raw, notion.ExtractOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Untitled", got.Title)
	})
}

func TestContentRootHTML(t *testing.T) {
	raw := page("Doc", block("b1", "notion-text-block", "hello"))

	rootHTML, err := notion.ContentRootHTML(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rootHTML, `<div class="notion-page-content">`))
	assert.Contains(t, rootHTML, "hello")

	rootHTML, err = notion.ContentRootHTML("<html><body><p>no root</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "", rootHTML)
}

// Package notion drives a browser session through a Notion page and turns
// its rendered DOM into plain text: navigate, wait for the content root,
// expand every collapsed toggle, then snapshot the block tree.
package notion

import "strings"

// DOM markers for Notion's rendered markup. These are the only coupling to
// Notion's frontend; when Notion ships a redesign, this is the file to fix.
const (
	// ContentRootSelector identifies the single subtree holding the page body.
	ContentRootSelector = "div.notion-page-content"

	// blockMarkerAttr marks one structural content unit (paragraph, list
	// item, heading, toggle body, ...).
	blockMarkerAttr = "data-block-id"

	// BlockSelector matches every block-marked element.
	BlockSelector = "[" + blockMarkerAttr + "]"

	// ToggleSelector matches collapsed, expandable toggles.
	ToggleSelector = `div[role="button"][aria-expanded="false"]`
)

// titleSelectors is tried in order; the first non-empty match wins.
// Falls back to "Untitled", same as Notion's own placeholder.
var titleSelectors = []string{
	"h1.notion-page-block",
	`div[data-content-editable-leaf="true"]`,
}

// mediaClassFragments flag media blocks by class-name substring. A block
// whose class matches any fragment is dropped entirely, together with any
// block containing an img/svg/video/audio/iframe element.
var mediaClassFragments = []string{
	"image", "video", "audio", "file", "embed", "bookmark",
}

// mediaTagSelector matches media elements anywhere inside a block.
const mediaTagSelector = "img, svg, video, audio, iframe"

// IsNotionURL reports whether the URL carries one of the recognized Notion
// host markers. Either marker is sufficient.
func IsNotionURL(raw string) bool {
	return strings.Contains(raw, "notion.so") || strings.Contains(raw, "notion.site")
}

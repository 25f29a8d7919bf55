package models

// Extraction is the success body for GET /scrape: the page title plus the
// plain-text (or Markdown) rendering of its body.
type Extraction struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ErrorResponse is the error body for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

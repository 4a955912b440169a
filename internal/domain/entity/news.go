package entity

// NewsItem represents a single legal news story.
// SourceURL points at the publisher's page; AltURL is an optional mirror or
// secondary report of the same story.
type NewsItem struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	Date      string `json:"date,omitempty"`
	SourceURL string `json:"source_url"`
	AltURL    string `json:"alt_url,omitempty"`
}

// TextParts implements Record.
func (n NewsItem) TextParts() []string {
	return nonEmpty(n.Headline, n.Summary)
}

// URLs implements Record.
func (n NewsItem) URLs() []string {
	return nonEmpty(n.SourceURL, n.AltURL)
}

// Validate checks that the item carries at least a headline.
func (n NewsItem) Validate() error {
	if n.Headline == "" {
		return &ValidationError{Field: "headline", Message: "headline is required"}
	}
	return nil
}

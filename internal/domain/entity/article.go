package entity

// LegalArticle represents a long-form commentary or analysis piece.
type LegalArticle struct {
	Title        string `json:"title"`
	Abstract     string `json:"abstract"`
	Author       string `json:"author,omitempty"`
	Link         string `json:"link"`
	AlternateURL string `json:"alternate_url,omitempty"`
}

// TextParts implements Record.
func (a LegalArticle) TextParts() []string {
	return nonEmpty(a.Title, a.Abstract)
}

// URLs implements Record.
func (a LegalArticle) URLs() []string {
	return nonEmpty(a.Link, a.AlternateURL)
}

// Validate checks that the article carries at least a title.
func (a LegalArticle) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	return nil
}

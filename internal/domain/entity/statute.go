package entity

// Statute represents an act, rule, or regulation.
// SourceURL points at the official text; DownloadURL is an optional gazette copy.
type Statute struct {
	Name        string `json:"name"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
	DownloadURL string `json:"download_url,omitempty"`
}

// TextParts implements Record.
func (s Statute) TextParts() []string {
	return nonEmpty(s.Name, s.Description)
}

// URLs implements Record.
func (s Statute) URLs() []string {
	return nonEmpty(s.SourceURL, s.DownloadURL)
}

// Validate checks that the statute carries at least a name.
func (s Statute) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

package entity

// Judgment represents a reported court decision.
// JudgmentURL points at the hosted full text; PDFURL is an optional download copy.
type Judgment struct {
	CaseName    string `json:"case_name"`
	Court       string `json:"court,omitempty"`
	Citation    string `json:"citation,omitempty"`
	Date        string `json:"date,omitempty"`
	Gist        string `json:"gist"`
	JudgmentURL string `json:"judgment_url"`
	PDFURL      string `json:"pdf_url,omitempty"`
}

// TextParts implements Record.
// Court and citation are identifiers, not narrative text, so they are excluded.
func (j Judgment) TextParts() []string {
	return nonEmpty(j.CaseName, j.Gist)
}

// URLs implements Record.
func (j Judgment) URLs() []string {
	return nonEmpty(j.JudgmentURL, j.PDFURL)
}

// Validate checks that the judgment carries at least a case name.
func (j Judgment) Validate() error {
	if j.CaseName == "" {
		return &ValidationError{Field: "case_name", Message: "case name is required"}
	}
	return nil
}

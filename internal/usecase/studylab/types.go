// Package studylab turns legal source text into study artifacts: flashcards,
// a mind map, and a briefing note. Unlike the fetch-batch family, these
// operations surface errors to the caller.
package studylab

// Flashcard is one question/answer pair.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// MindMapNode is one node of the concept map. Children may be empty.
type MindMapNode struct {
	Label    string        `json:"label"`
	Children []MindMapNode `json:"children,omitempty"`
}

// BriefingNote is a case-brief style summary of the source text.
type BriefingNote struct {
	Title        string   `json:"title"`
	Facts        string   `json:"facts"`
	Issues       []string `json:"issues"`
	Held         string   `json:"held"`
	Significance string   `json:"significance"`
}

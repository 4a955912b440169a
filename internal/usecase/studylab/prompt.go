package studylab

import "fmt"

func flashcardsInstructions(text string, count int) string {
	return fmt.Sprintf("Create up to %d study flashcards from the legal text below. "+
		"Each card has a short question on the front and a precise answer on the back, "+
		"grounded only in the text.\n\nTEXT:\n%s", count, text)
}

func flashcardsSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"cards"},
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"front", "back"},
					"properties": map[string]any{
						"front": map[string]any{"type": "string", "description": "question side"},
						"back":  map[string]any{"type": "string", "description": "answer side"},
					},
				},
			},
		},
	}
}

func mindMapInstructions(text string) string {
	return "Build a concept mind map of the legal text below. The root node names the " +
		"overall topic; children break it into doctrines, tests, and authorities, at most " +
		"three levels deep.\n\nTEXT:\n" + text
}

func mindMapSchema() map[string]any {
	node := map[string]any{
		"type":     "object",
		"required": []string{"label"},
		"properties": map[string]any{
			"label": map[string]any{"type": "string"},
			"children": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "object"},
				"description": "child nodes with the same {label, children} shape",
			},
		},
	}
	return node
}

func briefingInstructions(text string) string {
	return "Write a briefing note for the legal text below in case-brief form: title, " +
		"material facts, the issues presented, what was held, and why it matters.\n\nTEXT:\n" + text
}

func briefingSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"title", "facts", "issues", "held", "significance"},
		"properties": map[string]any{
			"title":        map[string]any{"type": "string"},
			"facts":        map[string]any{"type": "string"},
			"issues":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"held":         map[string]any{"type": "string"},
			"significance": map[string]any{"type": "string"},
		},
	}
}

package feed

import (
	"fmt"
	"strings"

	"lexfeed/internal/common/pagination"
	"lexfeed/internal/domain/entity"
)

// buildInstructions produces the free-text request for one batch. The page
// index is stated explicitly so consecutive pages return different items, and
// the query narrows the subject when present.
func buildInstructions(kind entity.Kind, query string, params pagination.Params) string {
	var b strings.Builder

	switch kind {
	case entity.KindNews:
		fmt.Fprintf(&b, "List %d recent legal news stories", params.Limit)
	case entity.KindArticles:
		fmt.Fprintf(&b, "List %d scholarly legal articles or commentary pieces", params.Limit)
	case entity.KindJudgments:
		fmt.Fprintf(&b, "List %d notable court judgments with citations", params.Limit)
	case entity.KindStatutes:
		fmt.Fprintf(&b, "List %d statutes or legislative acts", params.Limit)
	case entity.KindJurisdiction:
		fmt.Fprintf(&b, "List %d recent legal developments from the jurisdiction %q", params.Limit, query)
	}

	if kind != entity.KindJurisdiction && query != "" {
		fmt.Fprintf(&b, " about %q", query)
	}

	fmt.Fprintf(&b, ". This is page %d of results; skip items that would appear on earlier pages.", params.Page)
	b.WriteString(" Every URL must be a real, complete, publicly reachable link to the cited source." +
		" Omit an item entirely rather than inventing or truncating a URL.")

	return b.String()
}

// batchSchema returns the strict output schema for one batch request.
// The envelope is always {"records": [...]} with kind-specific item shapes.
func batchSchema(kind entity.Kind) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"records"},
		"properties": map[string]any{
			"records": map[string]any{
				"type":  "array",
				"items": recordSchema(kind),
			},
		},
	}
}

func recordSchema(kind entity.Kind) map[string]any {
	switch kind {
	case entity.KindArticles:
		return objectSchema(
			[]string{"title", "abstract", "link"},
			map[string]any{
				"title":         stringField("article title"),
				"abstract":      stringField("short abstract of the article"),
				"author":        stringField("author name"),
				"link":          stringField("full URL of the article"),
				"alternate_url": stringField("mirror or alternate URL"),
			})
	case entity.KindJudgments:
		return objectSchema(
			[]string{"case_name", "court", "gist", "judgment_url"},
			map[string]any{
				"case_name":    stringField("case name, e.g. parties versus parties"),
				"court":        stringField("deciding court"),
				"citation":     stringField("neutral or reporter citation"),
				"date":         stringField("decision date, ISO 8601"),
				"gist":         stringField("one-paragraph summary of the holding"),
				"judgment_url": stringField("full URL of the judgment text"),
				"pdf_url":      stringField("direct URL of the judgment PDF"),
			})
	case entity.KindStatutes:
		return objectSchema(
			[]string{"name", "description", "source_url"},
			map[string]any{
				"name":         stringField("short title of the statute"),
				"year":         stringField("year of enactment"),
				"description":  stringField("what the statute covers"),
				"source_url":   stringField("full URL of the statute text"),
				"download_url": stringField("direct download URL if available"),
			})
	default:
		// News and jurisdiction feeds share the news item shape.
		return objectSchema(
			[]string{"headline", "summary", "source_url"},
			map[string]any{
				"headline":   stringField("news headline"),
				"summary":    stringField("two-sentence summary"),
				"date":       stringField("publication date, ISO 8601"),
				"source_url": stringField("full URL of the story"),
				"alt_url":    stringField("secondary report of the same story"),
			})
	}
}

func objectSchema(required []string, properties map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"required":   required,
		"properties": properties,
	}
}

func stringField(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

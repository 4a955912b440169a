package entity

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	valid := []string{"news", "articles", "judgments", "statutes", "jurisdiction"}
	for _, s := range valid {
		kind, err := ParseKind(s)
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error %v", s, err)
		}
		if string(kind) != s {
			t.Errorf("ParseKind(%q) = %q", s, kind)
		}
	}

	_, err := ParseKind("podcasts")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewsItem_RecordInterface(t *testing.T) {
	item := NewsItem{
		Headline:  "Right to Privacy upheld",
		Summary:   "Nine-judge bench rules privacy a fundamental right.",
		SourceURL: "https://courtsite.example.org/privacy-judgment",
	}

	texts := item.TextParts()
	if len(texts) != 2 {
		t.Fatalf("expected 2 text parts, got %d: %v", len(texts), texts)
	}

	urls := item.URLs()
	if len(urls) != 1 {
		t.Fatalf("expected 1 url (alt empty), got %d: %v", len(urls), urls)
	}
	if urls[0] != item.SourceURL {
		t.Errorf("expected source url, got %q", urls[0])
	}
}

func TestJudgment_URLsOmitEmptyFields(t *testing.T) {
	j := Judgment{CaseName: "State v. Nobody", Gist: "Acquittal on appeal."}
	if got := j.URLs(); len(got) != 0 {
		t.Errorf("expected no urls, got %v", got)
	}

	j.JudgmentURL = "https://judgments.court.gov/state-v-nobody"
	j.PDFURL = "https://judgments.court.gov/state-v-nobody.pdf"
	if got := j.URLs(); len(got) != 2 {
		t.Errorf("expected 2 urls, got %v", got)
	}
}

func TestJudgment_TextPartsExcludeCitation(t *testing.T) {
	j := Judgment{
		CaseName: "A v. B",
		Citation: "2024 SCC 101",
		Court:    "Supreme Court",
		Gist:     "Bail granted.",
	}
	for _, part := range j.TextParts() {
		if part == j.Citation || part == j.Court {
			t.Errorf("identifier field %q leaked into text parts", part)
		}
	}
}

func TestValidate_RequiresTitleLikeField(t *testing.T) {
	cases := []struct {
		name string
		rec  interface{ Validate() error }
	}{
		{"news", NewsItem{SourceURL: "https://example.org/x"}},
		{"article", LegalArticle{Link: "https://example.org/x"}},
		{"judgment", Judgment{JudgmentURL: "https://example.org/x"}},
		{"statute", Statute{SourceURL: "https://example.org/x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if err == nil {
				t.Fatal("expected validation error for blank title field")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

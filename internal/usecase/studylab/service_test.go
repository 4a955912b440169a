package studylab

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, instructions string, schema map[string]any) ([]byte, error)

func (f generatorFunc) Generate(ctx context.Context, instructions string, schema map[string]any) ([]byte, error) {
	return f(ctx, instructions, schema)
}

type fetcherFunc func(ctx context.Context, url string) (string, error)

func (f fetcherFunc) FetchText(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

func staticGenerator(payload string) Generator {
	return generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		return []byte(payload), nil
	})
}

func TestFlashcards(t *testing.T) {
	svc := NewService(staticGenerator(`{"cards":[
		{"front":"What standard governs bail conditions?","back":"Proportionality to the offence."},
		{"front":"","back":"discarded"},
		{"front":"Who bears the burden?","back":"The prosecution."}
	]}`), nil)

	cards, err := svc.Flashcards(context.Background(), "source text")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Proportionality to the offence.", cards[0].Back)
}

func TestFlashcards_AllBlankIsError(t *testing.T) {
	svc := NewService(staticGenerator(`{"cards":[{"front":"","back":""}]}`), nil)

	_, err := svc.Flashcards(context.Background(), "source text")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestFlashcards_GeneratorErrorSurfaces(t *testing.T) {
	backendErr := errors.New("backend unavailable")
	svc := NewService(generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		return nil, backendErr
	}), nil)

	_, err := svc.Flashcards(context.Background(), "source text")
	assert.ErrorIs(t, err, backendErr)
}

func TestMindMap(t *testing.T) {
	svc := NewService(staticGenerator(`{
		"label":"Anticipatory Bail",
		"children":[{"label":"Statutory basis"},{"label":"Leading cases","children":[{"label":"Gurbaksh Singh Sibbia"}]}]
	}`), nil)

	root, err := svc.MindMap(context.Background(), "source text")
	require.NoError(t, err)
	assert.Equal(t, "Anticipatory Bail", root.Label)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Gurbaksh Singh Sibbia", root.Children[1].Children[0].Label)
}

func TestMindMap_MissingLabel(t *testing.T) {
	svc := NewService(staticGenerator(`{"children":[{"label":"orphan"}]}`), nil)

	_, err := svc.MindMap(context.Background(), "source text")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestBriefing(t *testing.T) {
	svc := NewService(staticGenerator(`{
		"title":"State v Kumar",
		"facts":"Accused sought bail with onerous conditions attached.",
		"issues":["Whether conditions amounted to denial of bail"],
		"held":"Conditions must be capable of performance.",
		"significance":"Sets guidance for trial courts."
	}`), nil)

	note, err := svc.Briefing(context.Background(), "source text")
	require.NoError(t, err)
	assert.Equal(t, "State v Kumar", note.Title)
	assert.Len(t, note.Issues, 1)
}

func TestBriefing_UnparseablePayload(t *testing.T) {
	svc := NewService(staticGenerator(`not json at all`), nil)

	_, err := svc.Briefing(context.Background(), "source text")
	assert.Error(t, err)
}

func TestResolve_PrefersText(t *testing.T) {
	svc := NewService(nil, fetcherFunc(func(_ context.Context, _ string) (string, error) {
		t.Fatal("fetcher must not be called when text is present")
		return "", nil
	}))

	text, err := svc.Resolve(context.Background(), "  pasted text  ", "https://example.org/x")
	require.NoError(t, err)
	assert.Equal(t, "pasted text", text)
}

func TestResolve_FetchesURL(t *testing.T) {
	svc := NewService(nil, fetcherFunc(func(_ context.Context, url string) (string, error) {
		assert.Equal(t, "https://court.gov/judgment", url)
		return "extracted judgment text", nil
	}))

	text, err := svc.Resolve(context.Background(), "", "https://court.gov/judgment")
	require.NoError(t, err)
	assert.Equal(t, "extracted judgment text", text)
}

func TestResolve_EmptyInput(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Resolve(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestResolve_CapsLength(t *testing.T) {
	long := strings.Repeat("a", maxInputChars+500)

	text, err := NewService(nil, nil).Resolve(context.Background(), long, "")
	require.NoError(t, err)
	assert.Len(t, text, maxInputChars)
}

func TestResolve_FetchErrorSurfaces(t *testing.T) {
	fetchErr := errors.New("blocked host")
	svc := NewService(nil, fetcherFunc(func(_ context.Context, _ string) (string, error) {
		return "", fetchErr
	}))

	_, err := svc.Resolve(context.Background(), "", "https://internal/x")
	assert.ErrorIs(t, err, fetchErr)
}

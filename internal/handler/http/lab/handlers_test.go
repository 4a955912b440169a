package lab

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexfeed/internal/handler/http/auth"
	"lexfeed/internal/usecase/studylab"
)

type generatorFunc func(ctx context.Context, instructions string, schema map[string]any) ([]byte, error)

func (f generatorFunc) Generate(ctx context.Context, instructions string, schema map[string]any) ([]byte, error) {
	return f(ctx, instructions, schema)
}

func testAuthConfig() auth.Config {
	return auth.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		AccessKey: "k",
		TokenTTL:  time.Hour,
	}
}

func newMux(t *testing.T, g studylab.Generator) (*http.ServeMux, string) {
	t.Helper()
	cfg := testAuthConfig()
	svc := studylab.NewService(g, nil)

	mux := http.NewServeMux()
	Register(mux, svc, cfg, slog.Default())

	token, err := auth.IssueToken(cfg)
	require.NoError(t, err)
	return mux, token
}

func postJSON(mux *http.ServeMux, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestFlashcardsEndpoint(t *testing.T) {
	gen := generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		return []byte(`{"cards":[{"front":"Q","back":"A"}]}`), nil
	})
	mux, token := newMux(t, gen)

	rec := postJSON(mux, "/lab/flashcards", token, `{"text":"some judgment text"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Flashcards []studylab.Flashcard `json:"flashcards"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Flashcards, 1)
	assert.Equal(t, "Q", body.Flashcards[0].Front)
}

func TestLabEndpoints_RequireAuth(t *testing.T) {
	mux, _ := newMux(t, generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		t.Fatal("generator must not be called without auth")
		return nil, nil
	}))

	for _, path := range []string{"/lab/flashcards", "/lab/mindmap", "/lab/brief"} {
		rec := postJSON(mux, path, "", `{"text":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestLabEndpoint_EmptyInput(t *testing.T) {
	mux, token := newMux(t, generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		t.Fatal("generator must not be called for empty input")
		return nil, nil
	}))

	rec := postJSON(mux, "/lab/brief", token, `{"text":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLabEndpoint_BackendFailureIs502(t *testing.T) {
	mux, token := newMux(t, generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		return nil, errors.New("max retry attempts (3) exceeded: status 529: overloaded")
	}))

	rec := postJSON(mux, "/lab/mindmap", token, `{"text":"judgment text"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "generation failed")
	assert.NotContains(t, rec.Body.String(), "529")
}

func TestLabEndpoint_MalformedBody(t *testing.T) {
	mux, token := newMux(t, generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		return []byte(`{}`), nil
	}))

	rec := postJSON(mux, "/lab/flashcards", token, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBriefingEndpoint(t *testing.T) {
	gen := generatorFunc(func(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
		return []byte(`{"title":"State v Kumar","facts":"f","issues":["i"],"held":"h","significance":"s"}`), nil
	})
	mux, token := newMux(t, gen)

	rec := postJSON(mux, "/lab/brief", token, `{"text":"judgment text"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Brief studylab.BriefingNote `json:"brief"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "State v Kumar", body.Brief.Title)
}

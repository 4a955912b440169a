package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexfeed/internal/common/pagination"
	"lexfeed/internal/domain/entity"
)

func TestBuildInstructions(t *testing.T) {
	params := pagination.Params{Page: 3, Limit: 7}

	got := buildInstructions(entity.KindJudgments, "anticipatory bail", params)

	assert.Contains(t, got, "7 notable court judgments")
	assert.Contains(t, got, `"anticipatory bail"`)
	assert.Contains(t, got, "page 3")
	assert.Contains(t, got, "complete, publicly reachable link")
}

func TestBuildInstructions_NoQuery(t *testing.T) {
	got := buildInstructions(entity.KindNews, "", pagination.Params{Page: 1, Limit: 10})
	assert.NotContains(t, got, "about")
}

func TestBatchSchema_EnvelopeShape(t *testing.T) {
	for _, kind := range []entity.Kind{
		entity.KindNews, entity.KindArticles, entity.KindJudgments,
		entity.KindStatutes, entity.KindJurisdiction,
	} {
		t.Run(string(kind), func(t *testing.T) {
			schema := batchSchema(kind)

			assert.Equal(t, []string{"records"}, schema["required"])
			props, ok := schema["properties"].(map[string]any)
			require.True(t, ok)
			records, ok := props["records"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "array", records["type"])
			assert.NotNil(t, records["items"])
		})
	}
}

func TestRecordSchema_RequiredFields(t *testing.T) {
	judgments := recordSchema(entity.KindJudgments)
	assert.ElementsMatch(t,
		[]string{"case_name", "court", "gist", "judgment_url"},
		judgments["required"])

	news := recordSchema(entity.KindNews)
	assert.ElementsMatch(t,
		[]string{"headline", "summary", "source_url"},
		news["required"])
}

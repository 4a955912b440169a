package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexfeed/internal/domain/entity"
)

func TestDecodeBatch_Judgments(t *testing.T) {
	payload := []byte(`{"records":[
		{"case_name":"State v Kumar","court":"Supreme Court","citation":"2025 SC 114","gist":"Bail conditions must be proportionate.","judgment_url":"https://court.gov/judgments/state-v-kumar","pdf_url":"https://court.gov/judgments/state-v-kumar.pdf"}
	]}`)

	batch, err := decodeBatch(entity.KindJudgments, payload)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	j, ok := batch[0].(entity.Judgment)
	require.True(t, ok)
	assert.Equal(t, "State v Kumar", j.CaseName)
	assert.Len(t, j.URLs(), 2)
}

func TestDecodeBatch_DropsInvalidRecordsSilently(t *testing.T) {
	// The second record has no headline and fails entity validation.
	payload := []byte(`{"records":[
		{"headline":"Valid story","summary":"s","source_url":"https://news.org/valid-story-path"},
		{"summary":"orphan summary","source_url":"https://news.org/orphan-path"}
	]}`)

	batch, err := decodeBatch(entity.KindNews, payload)
	require.NoError(t, err)
	assert.Len(t, batch, 1)
}

func TestDecodeBatch_EmptyRecords(t *testing.T) {
	batch, err := decodeBatch(entity.KindStatutes, []byte(`{"records":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, batch)
	assert.Empty(t, batch)
}

func TestDecodeBatch_MalformedEnvelope(t *testing.T) {
	_, err := decodeBatch(entity.KindArticles, []byte(`{"records": 42}`))
	assert.Error(t, err)
}

func TestDecodeBatch_JurisdictionSharesNewsShape(t *testing.T) {
	payload := []byte(`{"records":[{"headline":"New tenancy rules notified","summary":"s","source_url":"https://gazette.gov/tenancy-rules"}]}`)

	batch, err := decodeBatch(entity.KindJurisdiction, payload)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	_, ok := batch[0].(entity.NewsItem)
	assert.True(t, ok)
}

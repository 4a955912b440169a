package feed

import (
	"encoding/json"
	"fmt"

	"lexfeed/internal/domain/entity"
)

// decodeBatch parses a generator payload into typed records for the kind.
// Individual records failing entity validation are dropped silently; a payload
// that does not match the envelope at all is an error for the boundary to
// absorb.
func decodeBatch(kind entity.Kind, payload []byte) (entity.Batch, error) {
	switch kind {
	case entity.KindArticles:
		return decodeRecords[entity.LegalArticle](payload)
	case entity.KindJudgments:
		return decodeRecords[entity.Judgment](payload)
	case entity.KindStatutes:
		return decodeRecords[entity.Statute](payload)
	case entity.KindNews, entity.KindJurisdiction:
		return decodeRecords[entity.NewsItem](payload)
	}
	return nil, fmt.Errorf("%w: no decoder for kind %q", entity.ErrInvalidInput, kind)
}

// validatable is implemented by every record variant.
type validatable interface {
	entity.Record
	Validate() error
}

func decodeRecords[T validatable](payload []byte) (entity.Batch, error) {
	var envelope struct {
		Records []T `json:"records"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal batch payload: %w", err)
	}

	batch := make(entity.Batch, 0, len(envelope.Records))
	for _, r := range envelope.Records {
		if err := r.Validate(); err != nil {
			continue
		}
		batch = append(batch, r)
	}
	return batch, nil
}

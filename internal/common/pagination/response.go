package pagination

// Metadata describes the page window of a generated batch. Batches are
// produced on demand rather than read from a store, so there is no total
// count; Count is the number of items actually returned after filtering.
type Metadata struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

// Response is a generic paginated response wrapper.
//
// Example usage:
//
//	response := pagination.NewResponse(items, pagination.Metadata{Page: 1, Limit: 10, Count: len(items)})
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse creates a new paginated response with data and metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}

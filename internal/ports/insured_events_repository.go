package ports

import (
	"context"
	"encoding/json"

	"insuredevents/internal/domain/insuredevent"
)

// Pagination selects a page of search results. Zero fields are not sent.
type Pagination struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"pageSize,omitempty"`
}

// SearchResult pairs one page of items with the total number of matches.
type SearchResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// InsuredEventsRepository is the read model of insured events.
// Implementations preserve the server-defined order of items.
type InsuredEventsRepository interface {
	Search(ctx context.Context, filter insuredevent.Filter, pagination Pagination) (SearchResult[insuredevent.InsuredEvent], error)
	// GetByID fails with insuredevent.ErrNotFound when no record matches.
	GetByID(ctx context.Context, id string) (insuredevent.InsuredEvent, error)
}

type searchSignature struct {
	Filter     insuredevent.Filter `json:"filter"`
	Pagination Pagination          `json:"pagination"`
}

// SearchSignature serializes a search request structurally.
// Struct fields encode in declaration order, so equal requests always produce equal signatures.
func SearchSignature(filter insuredevent.Filter, pagination Pagination) string {
	raw, err := json.Marshal(searchSignature{Filter: filter, Pagination: pagination})
	if err != nil {
		// Only string and int fields: Marshal cannot fail.
		panic(err)
	}
	return string(raw)
}

package ports

import (
	"context"

	"insuredevents/internal/domain/insuredevent"
)

// DictionaryRepository is the source of filter vocabularies.
type DictionaryRepository interface {
	GetFilterDictionary(ctx context.Context) (insuredevent.FilterDictionaries, error)
}

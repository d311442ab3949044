package repositorycache

import (
	"context"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
)

// DictionariesRepository memoizes the filter dictionaries of an inner repository.
type DictionariesRepository struct {
	inner ports.DictionaryRepository
	cache ports.Cache
}

var _ ports.DictionaryRepository = (*DictionariesRepository)(nil)

func NewDictionariesRepository(inner ports.DictionaryRepository, cache ports.Cache) *DictionariesRepository {
	return &DictionariesRepository{inner: inner, cache: cache}
}

func (r *DictionariesRepository) GetFilterDictionary(ctx context.Context) (insuredevent.FilterDictionaries, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return insuredevent.FilterDictionaries{}, err
	}

	return readThrough(ctx, r.cache, "filter_dictionaries", DictionariesKey, DictionariesTTL,
		r.inner.GetFilterDictionary)
}

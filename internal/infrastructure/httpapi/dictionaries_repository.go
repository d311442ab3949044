package httpapi

import (
	"context"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
)

const filterDictionariesPath = "api/service/reports/api/v1/damages/filter-dictionaries"

// DictionariesRepository reads filter vocabularies from the reports service.
type DictionariesRepository struct {
	client *Client
}

var _ ports.DictionaryRepository = (*DictionariesRepository)(nil)

func NewDictionariesRepository(client *Client) *DictionariesRepository {
	return &DictionariesRepository{client: client}
}

func (r *DictionariesRepository) GetFilterDictionary(ctx context.Context) (insuredevent.FilterDictionaries, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return insuredevent.FilterDictionaries{}, err
	}

	var dto filterDictionariesDTO
	if err := r.client.getJSON(ctx, "filter_dictionaries", filterDictionariesPath, nil, &dto); err != nil {
		return insuredevent.FilterDictionaries{}, errs.Wrap(err, "get filter dictionaries")
	}

	dicts, err := mapFilterDictionariesDTO(dto)
	if err != nil {
		return insuredevent.FilterDictionaries{}, errs.Wrap(err, "get filter dictionaries")
	}
	return dicts, nil
}

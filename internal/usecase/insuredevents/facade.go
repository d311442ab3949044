package insuredevents

import (
	"context"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/ports"
)

// Facade is the surface presentation code depends on.
// It stays the same when repository or cache wiring behind the Service changes.
type Facade struct {
	service *Service
}

func NewFacade(service *Service) *Facade {
	return &Facade{service: service}
}

// Load returns one page of insured events matching filter.
func (f *Facade) Load(
	ctx context.Context,
	filter insuredevent.Filter,
	pagination ports.Pagination,
	opts ...Option,
) (ports.SearchResult[insuredevent.InsuredEvent], error) {
	return f.service.GetEvents(ctx, filter, pagination, opts...)
}

func (f *Facade) GetByID(ctx context.Context, id string) (insuredevent.InsuredEvent, error) {
	return f.service.GetEventByID(ctx, id)
}

func (f *Facade) GetFilterDictionaries(ctx context.Context) (insuredevent.FilterDictionaries, error) {
	return f.service.GetFilterDictionaries(ctx)
}

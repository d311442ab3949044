package repositorycache

import (
	"context"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
)

// EventsRepository memoizes search pages and event details of an inner repository.
// Callers cannot tell it apart from the repository it wraps.
type EventsRepository struct {
	inner ports.InsuredEventsRepository
	cache ports.Cache
}

var _ ports.InsuredEventsRepository = (*EventsRepository)(nil)

func NewEventsRepository(inner ports.InsuredEventsRepository, cache ports.Cache) *EventsRepository {
	return &EventsRepository{inner: inner, cache: cache}
}

func (r *EventsRepository) Search(
	ctx context.Context,
	filter insuredevent.Filter,
	pagination ports.Pagination,
) (ports.SearchResult[insuredevent.InsuredEvent], error) {
	if err := errs.CheckContext(ctx); err != nil {
		return ports.SearchResult[insuredevent.InsuredEvent]{}, err
	}

	return readThrough(ctx, r.cache, "search", SearchKey(filter, pagination), SearchTTL,
		func(ctx context.Context) (ports.SearchResult[insuredevent.InsuredEvent], error) {
			return r.inner.Search(ctx, filter, pagination)
		})
}

func (r *EventsRepository) GetByID(ctx context.Context, id string) (insuredevent.InsuredEvent, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return insuredevent.InsuredEvent{}, err
	}

	return readThrough(ctx, r.cache, "get_by_id", ByIDKey(id), DetailsTTL,
		func(ctx context.Context) (insuredevent.InsuredEvent, error) {
			return r.inner.GetByID(ctx, id)
		})
}

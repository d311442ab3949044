package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
)

const eventsPath = "/api/insured-events"

// EventsRepository reads insured events from the upstream API.
type EventsRepository struct {
	client *Client
}

var _ ports.InsuredEventsRepository = (*EventsRepository)(nil)

func NewEventsRepository(client *Client) *EventsRepository {
	return &EventsRepository{client: client}
}

func (r *EventsRepository) Search(
	ctx context.Context,
	filter insuredevent.Filter,
	pagination ports.Pagination,
) (ports.SearchResult[insuredevent.InsuredEvent], error) {
	if err := errs.CheckContext(ctx); err != nil {
		return ports.SearchResult[insuredevent.InsuredEvent]{}, err
	}

	params, err := encodeSearchQuery(filter, pagination)
	if err != nil {
		return ports.SearchResult[insuredevent.InsuredEvent]{}, err
	}

	var body paginatedResponse[insuredEventDTO]
	if err := r.client.getJSON(ctx, "search", eventsPath, params, &body); err != nil {
		return ports.SearchResult[insuredevent.InsuredEvent]{}, errs.Wrap(err, "search insured events")
	}

	items, err := mapInsuredEventDTOs(body.Items)
	if err != nil {
		return ports.SearchResult[insuredevent.InsuredEvent]{}, errs.Wrap(err, "search insured events")
	}

	return ports.SearchResult[insuredevent.InsuredEvent]{
		Items: items,
		Total: body.Total,
	}, nil
}

func (r *EventsRepository) GetByID(ctx context.Context, id string) (insuredevent.InsuredEvent, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return insuredevent.InsuredEvent{}, err
	}
	if strings.TrimSpace(id) == "" {
		return insuredevent.InsuredEvent{}, insuredevent.ErrIDRequired
	}
	// dot segments survive escaping and would be resolved away when joined onto the path
	if id == "." || id == ".." {
		return insuredevent.InsuredEvent{}, fmt.Errorf("%w: %q", insuredevent.ErrInvalidID, id)
	}

	var dto insuredEventDTO
	if err := r.client.getJSON(ctx, "get_by_id", eventsPath+"/"+url.PathEscape(id), nil, &dto); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return insuredevent.InsuredEvent{}, fmt.Errorf("%w: id %q: %w", insuredevent.ErrNotFound, id, err)
		}
		return insuredevent.InsuredEvent{}, errs.Wrapf(err, "get insured event %q", id)
	}

	return mapInsuredEventDTO(dto)
}

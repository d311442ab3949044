package insuredevents

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"golang.org/x/sync/singleflight"

	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/infrastructure/metrics"
	"insuredevents/internal/ports"
)

// ErrorHook sees every repository failure before it reaches the caller and returns the error to report.
type ErrorHook func(ctx context.Context, op string, err error) error

// Service coordinates insured event reads. The repositories it gets may already be cache decorated.
type Service struct {
	repo     ports.InsuredEventsRepository
	dicts    ports.DictionaryRepository
	inflight singleflight.Group
	onError  ErrorHook
}

// NewService wires the service with an event repository and a dictionary repository.
func NewService(repo ports.InsuredEventsRepository, dicts ports.DictionaryRepository) *Service {
	return &Service{
		repo:    repo,
		dicts:   dicts,
		onError: logAndReturn,
	}
}

// WithErrorHook replaces the default log-and-rethrow handling.
func (s *Service) WithErrorHook(hook ErrorHook) *Service {
	if hook != nil {
		s.onError = hook
	}
	return s
}

// Option tunes a single GetEvents call.
type Option func(*callOptions)

type callOptions struct {
	force bool
}

// WithForce skips cached search results; the fresh result replaces the cached one.
func WithForce() Option {
	return func(o *callOptions) { o.force = true }
}

// GetEvents searches insured events. Concurrent calls with the same request share one execution.
// If ctx ends first the call returns ctx.Err(); the shared execution still completes and fills the cache.
func (s *Service) GetEvents(
	ctx context.Context,
	filter insuredevent.Filter,
	pagination ports.Pagination,
	opts ...Option,
) (ports.SearchResult[insuredevent.InsuredEvent], error) {
	var zero ports.SearchResult[insuredevent.InsuredEvent]
	if err := errs.CheckContext(ctx); err != nil {
		return zero, err
	}
	if s.repo == nil {
		return zero, errors.New("insured events repository is required")
	}

	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	key := ports.SearchSignature(filter, pagination)
	if o.force {
		key = "force:" + key
	}

	ch := s.inflight.DoChan(key, func() (any, error) {
		runCtx := context.WithoutCancel(ctx)
		if o.force {
			runCtx = ports.WithCacheBypass(runCtx)
		}
		return s.repo.Search(runCtx, filter, pagination)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, s.handleError(ctx, "get events", res.Err)
		}
		if res.Shared {
			metrics.SharedCallsTotal.WithLabelValues("get_events").Inc()
		}
		result := res.Val.(ports.SearchResult[insuredevent.InsuredEvent])
		result.Items = slices.Clone(result.Items)
		return result, nil
	}
}

// GetEventByID returns the detail of one event; a missing event fails with insuredevent.ErrNotFound.
func (s *Service) GetEventByID(ctx context.Context, id string) (insuredevent.InsuredEvent, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return insuredevent.InsuredEvent{}, err
	}
	if s.repo == nil {
		return insuredevent.InsuredEvent{}, errors.New("insured events repository is required")
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return insuredevent.InsuredEvent{}, s.handleError(ctx, "get event by id", err)
	}
	return event, nil
}

// GetFilterDictionaries loads the filter vocabularies.
func (s *Service) GetFilterDictionaries(ctx context.Context) (insuredevent.FilterDictionaries, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return insuredevent.FilterDictionaries{}, err
	}
	if s.dicts == nil {
		return insuredevent.FilterDictionaries{}, errors.New("dictionary repository is required")
	}

	dicts, err := s.dicts.GetFilterDictionary(ctx)
	if err != nil {
		return insuredevent.FilterDictionaries{}, s.handleError(ctx, "get filter dictionaries", err)
	}
	return dicts, nil
}

func (s *Service) handleError(ctx context.Context, op string, err error) error {
	return s.onError(ctx, op, err)
}

func logAndReturn(ctx context.Context, op string, err error) error {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "usecase.insuredevents"))
	logging.Error(logCtx, "insured events operation failed", slog.String("op", op), slog.Any("err", errs.Loggable(err)))
	return err
}

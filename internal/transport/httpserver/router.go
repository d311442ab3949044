// Package httpserver exposes the insured events facade over HTTP for a host application.
package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/ports"
	"insuredevents/internal/usecase/insuredevents"
)

// Facade is the part of insuredevents.Facade the handlers call.
type Facade interface {
	Load(ctx context.Context, filter insuredevent.Filter, pagination ports.Pagination, opts ...insuredevents.Option) (ports.SearchResult[insuredevent.InsuredEvent], error)
	GetByID(ctx context.Context, id string) (insuredevent.InsuredEvent, error)
	GetFilterDictionaries(ctx context.Context) (insuredevent.FilterDictionaries, error)
}

var _ Facade = (*insuredevents.Facade)(nil)

// Mount registers the insured events routes under /insured-events.
func Mount(r chi.Router, facade Facade) {
	h := &handlers{facade: facade}
	r.Route("/insured-events", func(r chi.Router) {
		r.Get("/", h.search)
		r.Get("/dictionaries", h.dictionaries)
		r.Get("/filters-form", h.filtersForm)
		r.Get("/{id}", h.getByID)
	})
}

// NewRouter is the standalone router used by the serve command.
func NewRouter(facade Facade) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(ProfileFromHeaders)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	Mount(r, facade)
	return r
}

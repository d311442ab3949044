package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/infrastructure/httpapi"
	"insuredevents/internal/ports"
	"insuredevents/internal/usecase/insuredevents"
)

type handlers struct {
	facade Facade
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := insuredevent.Filter{
		InsuranceType:  strings.TrimSpace(query.Get("insuranceType")),
		Insurant:       strings.TrimSpace(query.Get("insurant")),
		ContractNumber: strings.TrimSpace(query.Get("contractNumber")),
		EventStatus:    strings.TrimSpace(query.Get("eventStatus")),
		PayoutDecision: strings.TrimSpace(query.Get("payoutDecision")),
		PeriodFrom:     strings.TrimSpace(query.Get("periodFrom")),
		PeriodTo:       strings.TrimSpace(query.Get("periodTo")),
	}

	page, err := parseNonNegative(query.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errs.Wrap(err, "parse page"))
		return
	}
	pageSize, err := parseNonNegative(query.Get("pageSize"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errs.Wrap(err, "parse pageSize"))
		return
	}

	var opts []insuredevents.Option
	if force, _ := strconv.ParseBool(query.Get("force")); force {
		opts = append(opts, insuredevents.WithForce())
	}

	result, err := h.facade.Load(r.Context(), filter, ports.Pagination{Page: page, PageSize: pageSize}, opts...)
	if err != nil {
		h.fail(w, r, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) getByID(w http.ResponseWriter, r *http.Request) {
	event, err := h.facade.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get by id", err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *handlers) dictionaries(w http.ResponseWriter, r *http.Request) {
	dicts, err := h.facade.GetFilterDictionaries(r.Context())
	if err != nil {
		h.fail(w, r, "dictionaries", err)
		return
	}
	writeJSON(w, http.StatusOK, dicts)
}

func (h *handlers) filtersForm(w http.ResponseWriter, r *http.Request) {
	dicts, err := h.facade.GetFilterDictionaries(r.Context())
	if err != nil {
		h.fail(w, r, "filters form", err)
		return
	}
	writeJSON(w, http.StatusOK, insuredevents.CreateFiltersFromDictionaries(dicts))
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ctx := logging.WithAttrs(r.Context(),
			slog.String("component", "transport.httpserver"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		if profile, ok := ports.ProfileFromContext(r.Context()); ok {
			user, actor := profile.Split()
			ctx = logging.WithAttrs(ctx, slog.String("user_id", user.UserID))
			if actor != nil {
				ctx = logging.WithAttrs(ctx, slog.String("real_user_id", actor.UserID))
			}
		}
		logging.Error(ctx, "request failed", slog.String("op", op), slog.Int("status", status), slog.Any("err", errs.Loggable(err)))
	}
	writeError(w, status, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, insuredevent.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, insuredevent.ErrIDRequired), errors.Is(err, insuredevent.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return 499
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	var statusErr *httpapi.StatusError
	var apiErr *httpapi.APIError
	if errors.As(err, &statusErr) || errors.As(err, &apiErr) || errors.Is(err, insuredevent.ErrInvalidRegressFlag) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func parseNonNegative(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

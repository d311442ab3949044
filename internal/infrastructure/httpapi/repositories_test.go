package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/ports"
)

const sampleEventJSON = `{
	"policyId": "P-1",
	"policyNumber": "001-77",
	"contractNumber": "C-9",
	"insurantFullName": "Ivanov Ivan",
	"productName": "KASKO",
	"eventNumber": "E-100",
	"eventStatus": "OPEN",
	"regressFlag": "Регресс",
	"changedAt": "2026-02-14T10:00:00Z"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithHTTP(Config{
		BaseURL: server.URL,
		Headers: map[string]string{"X-Api-Key": "secret"},
	}, server.Client())
	if err != nil {
		t.Fatalf("NewClientWithHTTP() error = %v", err)
	}
	return client
}

func TestSearchEncodesFilterAndPagination(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [` + sampleEventJSON + `], "total": 57}`))
	})

	result, err := NewEventsRepository(client).Search(
		context.Background(),
		insuredevent.Filter{EventStatus: "OPEN"},
		ports.Pagination{Page: 1, PageSize: 20},
	)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/api/insured-events" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "eventStatus=OPEN&page=1&pageSize=20" {
		t.Fatalf("query = %q, want eventStatus=OPEN&page=1&pageSize=20", gotQuery)
	}
	if result.Total != 57 || len(result.Items) != 1 {
		t.Fatalf("result = %+v", result)
	}

	want := insuredevent.InsuredEvent{
		PolicyID:         "P-1",
		PolicyNumber:     "001-77",
		ContractNumber:   "C-9",
		InsurantFullName: "Ivanov Ivan",
		ProductName:      "KASKO",
		EventNumber:      "E-100",
		EventStatus:      "OPEN",
		RegressFlag:      insuredevent.RegressFlagRegress,
		ChangedAt:        "2026-02-14T10:00:00Z",
	}
	if result.Items[0] != want {
		t.Fatalf("item = %+v, want %+v", result.Items[0], want)
	}
}

func TestSearchOmitsEmptyFilterFieldsAndZeroPagination(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items": null, "total": 0}`))
	})

	result, err := NewEventsRepository(client).Search(
		context.Background(),
		insuredevent.Filter{Insurant: "", PeriodTo: "2026-01-31"},
		ports.Pagination{PageSize: 50},
	)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotQuery != "pageSize=50&periodTo=2026-01-31" {
		t.Fatalf("query = %q", gotQuery)
	}
	if result.Items == nil || len(result.Items) != 0 {
		t.Fatalf("items = %#v, want empty non-nil slice", result.Items)
	}
}

func TestSearchRejectsUnknownRegressFlag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"policyId": "P-2", "regressFlag": "maybe"}], "total": 1}`))
	})

	_, err := NewEventsRepository(client).Search(context.Background(), insuredevent.Filter{}, ports.Pagination{})
	if !errors.Is(err, insuredevent.ErrInvalidRegressFlag) {
		t.Fatalf("Search() error = %v, want ErrInvalidRegressFlag", err)
	}
}

func TestGetByIDEscapesIDAndSendsHeaders(t *testing.T) {
	var gotPath, gotKey, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotKey = r.Header.Get("X-Api-Key")
		gotRequestID = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(sampleEventJSON))
	})

	event, err := NewEventsRepository(client).GetByID(context.Background(), "P 1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotPath != "/api/insured-events/P%201" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("X-Api-Key = %q", gotKey)
	}
	if gotRequestID == "" {
		t.Fatalf("expected %s header", RequestIDHeader)
	}
	if event.PolicyID != "P-1" {
		t.Fatalf("event = %+v", event)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no such event"}`, http.StatusNotFound)
	})

	_, err := NewEventsRepository(client).GetByID(context.Background(), "missing")
	if !errors.Is(err, insuredevent.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("IsStatus(404) = false for %v", err)
	}
}

func TestGetByIDRequiresID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected")
	})

	if _, err := NewEventsRepository(client).GetByID(context.Background(), " "); !errors.Is(err, insuredevent.ErrIDRequired) {
		t.Fatalf("GetByID() error = %v, want ErrIDRequired", err)
	}
}

func TestGetByIDRejectsDotSegments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected, got %s", r.URL.Path)
	})

	for _, id := range []string{".", ".."} {
		if _, err := NewEventsRepository(client).GetByID(context.Background(), id); !errors.Is(err, insuredevent.ErrInvalidID) {
			t.Fatalf("GetByID(%q) error = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestGetByIDKeepsDotsInsideID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(sampleEventJSON))
	})

	if _, err := NewEventsRepository(client).GetByID(context.Background(), "P.1"); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotPath != "/api/insured-events/P.1" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestUpstreamFailurePropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := NewEventsRepository(client).Search(context.Background(), insuredevent.Filter{}, ports.Pagination{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Search() error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusBadGateway || se.Body != "upstream down" {
		t.Fatalf("StatusError = %+v", se)
	}
	if errors.Is(err, insuredevent.ErrNotFound) {
		t.Fatalf("502 must not read as not found")
	}
}

func TestGetFilterDictionaryMapsServerNames(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data": {"insuranceKids": ["A", "B"], "lossStatuses": []}, "error": null}`))
	})

	dicts, err := NewDictionariesRepository(client).GetFilterDictionary(context.Background())
	if err != nil {
		t.Fatalf("GetFilterDictionary() error = %v", err)
	}
	if gotPath != "/api/service/reports/api/v1/damages/filter-dictionaries" {
		t.Fatalf("path = %q", gotPath)
	}

	want := insuredevent.FilterDictionaries{InsuranceTypes: []string{"A", "B"}, EventStatuses: []string{}}
	if !reflect.DeepEqual(dicts, want) {
		t.Fatalf("dicts = %#v, want %#v", dicts, want)
	}
}

func TestGetFilterDictionaryDefaultsMissingArrays(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "null arrays", body: `{"data": {"insuranceKids": null}, "error": null}`},
		{name: "null data", body: `{"data": null, "error": null}`},
		{name: "empty object", body: `{}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(testCase.body))
			})

			dicts, err := NewDictionariesRepository(client).GetFilterDictionary(context.Background())
			if err != nil {
				t.Fatalf("GetFilterDictionary() error = %v", err)
			}
			if dicts.InsuranceTypes == nil || dicts.EventStatuses == nil {
				t.Fatalf("dicts = %#v, want empty non-nil slices", dicts)
			}
			if len(dicts.InsuranceTypes) != 0 || len(dicts.EventStatuses) != 0 {
				t.Fatalf("dicts = %#v, want empty", dicts)
			}
		})
	}
}

func TestGetFilterDictionaryErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null, "error": {"code": "REPORTS_UNAVAILABLE"}}`))
	})

	_, err := NewDictionariesRepository(client).GetFilterDictionary(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetFilterDictionary() error = %v, want *APIError", err)
	}
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "/relative/path", "://bad"} {
		if _, err := NewClient(Config{BaseURL: raw}); err == nil {
			t.Fatalf("NewClient(%q) expected error", raw)
		}
	}
	if _, err := NewClient(Config{BaseURL: "https://gateway.example/insurance"}); err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
}

func TestClientJoinsBasePathPrefix(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"items": [], "total": 0}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClientWithHTTP(Config{BaseURL: server.URL + "/gateway/"}, server.Client())
	if err != nil {
		t.Fatalf("NewClientWithHTTP() error = %v", err)
	}
	if _, err := NewEventsRepository(client).Search(context.Background(), insuredevent.Filter{}, ports.Pagination{}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotPath != "/gateway/api/insured-events" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestReconfigureSwapsHeadersForLaterRequests(t *testing.T) {
	var gotKey, gotTenant string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotTenant = r.Header.Get("X-Tenant")
		_, _ = w.Write([]byte(sampleEventJSON))
	})

	headers := map[string]string{"X-Tenant": "north"}
	client.Reconfigure(headers, 0)
	headers["X-Tenant"] = "mutated"

	if _, err := NewEventsRepository(client).GetByID(context.Background(), "P-1"); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if gotKey != "" {
		t.Fatalf("X-Api-Key = %q, want dropped after reconfigure", gotKey)
	}
	if gotTenant != "north" {
		t.Fatalf("X-Tenant = %q, want north", gotTenant)
	}
}

func TestReconfigureTimeoutBoundsRequests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client.Reconfigure(nil, 20*time.Millisecond)

	_, err := NewEventsRepository(client).GetByID(context.Background(), "P-1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("GetByID() error = %v, want deadline exceeded", err)
	}
}

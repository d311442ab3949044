package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/formschema"
	"insuredevents/internal/infrastructure/httpapi"
	"insuredevents/internal/ports"
	"insuredevents/internal/usecase/insuredevents"
)

type fakeFacade struct {
	gotFilter     insuredevent.Filter
	gotPagination ports.Pagination
	gotOpts       int
	gotProfile    ports.Profile
	loadErr       error
	events        map[string]insuredevent.InsuredEvent
	byIDErr       error
	dicts         insuredevent.FilterDictionaries
}

func (f *fakeFacade) Load(ctx context.Context, filter insuredevent.Filter, pagination ports.Pagination, opts ...insuredevents.Option) (ports.SearchResult[insuredevent.InsuredEvent], error) {
	f.gotFilter = filter
	f.gotPagination = pagination
	f.gotOpts = len(opts)
	f.gotProfile, _ = ports.ProfileFromContext(ctx)
	if f.loadErr != nil {
		return ports.SearchResult[insuredevent.InsuredEvent]{}, f.loadErr
	}
	return ports.SearchResult[insuredevent.InsuredEvent]{
		Items: []insuredevent.InsuredEvent{{PolicyID: "P-1", EventStatus: "OPEN"}},
		Total: 1,
	}, nil
}

func (f *fakeFacade) GetByID(_ context.Context, id string) (insuredevent.InsuredEvent, error) {
	if f.byIDErr != nil {
		return insuredevent.InsuredEvent{}, f.byIDErr
	}
	event, ok := f.events[id]
	if !ok {
		return insuredevent.InsuredEvent{}, fmt.Errorf("%w: id %q", insuredevent.ErrNotFound, id)
	}
	return event, nil
}

func (f *fakeFacade) GetFilterDictionaries(context.Context) (insuredevent.FilterDictionaries, error) {
	return f.dicts, nil
}

func serve(t *testing.T, facade Facade, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(facade).ServeHTTP(rec, req)
	return rec
}

func TestSearchParsesFilterPaginationAndForce(t *testing.T) {
	facade := &fakeFacade{}
	req := httptest.NewRequest(http.MethodGet, "/insured-events?eventStatus=OPEN&insurant=Ivanov&page=2&pageSize=20&force=true", nil)
	req.Header.Set(HeaderUserID, "u-1")
	req.Header.Set(HeaderRealUserID, "op-7")

	rec := serve(t, facade, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, insuredevent.Filter{EventStatus: "OPEN", Insurant: "Ivanov"}, facade.gotFilter)
	require.Equal(t, ports.Pagination{Page: 2, PageSize: 20}, facade.gotPagination)
	require.Equal(t, 1, facade.gotOpts)
	require.Equal(t, "u-1", facade.gotProfile.UserID)
	require.NotNil(t, facade.gotProfile.Real)
	require.Equal(t, "op-7", facade.gotProfile.Real.UserID)

	var body ports.SearchResult[insuredevent.InsuredEvent]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	require.Equal(t, "P-1", body.Items[0].PolicyID)
}

func TestSearchRejectsBadPagination(t *testing.T) {
	for _, query := range []string{"page=abc", "pageSize=-1"} {
		rec := serve(t, &fakeFacade{}, httptest.NewRequest(http.MethodGet, "/insured-events?"+query, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestGetByIDStatusMapping(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "invalid id", err: fmt.Errorf("%w: %q", insuredevent.ErrInvalidID, ".."), status: http.StatusBadRequest},
		{name: "upstream failure", err: &httpapi.StatusError{StatusCode: http.StatusServiceUnavailable}, status: http.StatusBadGateway},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			facade := &fakeFacade{byIDErr: testCase.err}
			rec := serve(t, facade, httptest.NewRequest(http.MethodGet, "/insured-events/missing", nil))

			require.Equal(t, testCase.status, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotEmpty(t, body.Error)
		})
	}
}

func TestGetByIDReturnsEvent(t *testing.T) {
	facade := &fakeFacade{events: map[string]insuredevent.InsuredEvent{
		"P-1": {PolicyID: "P-1", RegressFlag: insuredevent.RegressFlagPool},
	}}

	rec := serve(t, facade, httptest.NewRequest(http.MethodGet, "/insured-events/P-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var event insuredevent.InsuredEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	require.Equal(t, insuredevent.RegressFlagPool, event.RegressFlag)
}

func TestDictionariesAndFiltersForm(t *testing.T) {
	facade := &fakeFacade{dicts: insuredevent.FilterDictionaries{
		InsuranceTypes: []string{"KASKO"},
		EventStatuses:  []string{"OPEN", "CLOSED"},
	}}

	rec := serve(t, facade, httptest.NewRequest(http.MethodGet, "/insured-events/dictionaries", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var dicts insuredevent.FilterDictionaries
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dicts))
	require.Equal(t, facade.dicts, dicts)

	rec = serve(t, facade, httptest.NewRequest(http.MethodGet, "/insured-events/filters-form", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var form []formschema.Field
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	require.Len(t, form, 2)
	require.Equal(t, "eventStatus", form[1].FieldGroup[0].Key)
	require.Len(t, form[1].FieldGroup[0].Props.Options, 2)
}

func TestProfileFromHeadersIgnoresSelfImpersonation(t *testing.T) {
	var got ports.Profile
	var found bool
	handler := ProfileFromHeaders(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, found = ports.ProfileFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "u-1")
	req.Header.Set(HeaderRealUserID, "u-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, found)
	require.Nil(t, got.Real)

	found = false
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, found)
}

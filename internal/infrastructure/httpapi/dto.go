package httpapi

import (
	"bytes"
	"encoding/json"
	"net/url"

	"github.com/google/go-querystring/query"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
)

// insuredEventDTO is an insured event as sent by the upstream API.
type insuredEventDTO struct {
	PolicyID         string `json:"policyId"`
	PolicyNumber     string `json:"policyNumber"`
	ContractNumber   string `json:"contractNumber"`
	InsurantFullName string `json:"insurantFullName"`
	ProductName      string `json:"productName"`
	EventNumber      string `json:"eventNumber"`
	EventStatus      string `json:"eventStatus"`
	RegressFlag      string `json:"regressFlag"`
	ChangedAt        string `json:"changedAt"`
}

type paginatedResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type filterDictionariesData struct {
	InsuranceKids []string `json:"insuranceKids"`
	LossStatuses  []string `json:"lossStatuses"`
}

type filterDictionariesDTO struct {
	Data   *filterDictionariesData `json:"data"`
	Error  json.RawMessage         `json:"error"`
	System json.RawMessage         `json:"system,omitempty"`
}

// searchQuery is the flat query string of the search endpoint. Empty values are omitted.
type searchQuery struct {
	InsuranceType  string `url:"insuranceType,omitempty"`
	Insurant       string `url:"insurant,omitempty"`
	ContractNumber string `url:"contractNumber,omitempty"`
	EventStatus    string `url:"eventStatus,omitempty"`
	PayoutDecision string `url:"payoutDecision,omitempty"`
	PeriodFrom     string `url:"periodFrom,omitempty"`
	PeriodTo       string `url:"periodTo,omitempty"`
	Page           int    `url:"page,omitempty"`
	PageSize       int    `url:"pageSize,omitempty"`
}

func encodeSearchQuery(filter insuredevent.Filter, pagination ports.Pagination) (url.Values, error) {
	values, err := query.Values(searchQuery{
		InsuranceType:  filter.InsuranceType,
		Insurant:       filter.Insurant,
		ContractNumber: filter.ContractNumber,
		EventStatus:    filter.EventStatus,
		PayoutDecision: filter.PayoutDecision,
		PeriodFrom:     filter.PeriodFrom,
		PeriodTo:       filter.PeriodTo,
		Page:           pagination.Page,
		PageSize:       pagination.PageSize,
	})
	if err != nil {
		return nil, errs.Wrap(err, "encode search query")
	}
	return values, nil
}

func mapInsuredEventDTO(dto insuredEventDTO) (insuredevent.InsuredEvent, error) {
	flag, err := insuredevent.ParseRegressFlag(dto.RegressFlag)
	if err != nil {
		return insuredevent.InsuredEvent{}, errs.Wrapf(err, "map insured event %q", dto.PolicyID)
	}

	return insuredevent.InsuredEvent{
		PolicyID:         dto.PolicyID,
		PolicyNumber:     dto.PolicyNumber,
		ContractNumber:   dto.ContractNumber,
		InsurantFullName: dto.InsurantFullName,
		ProductName:      dto.ProductName,
		EventNumber:      dto.EventNumber,
		EventStatus:      dto.EventStatus,
		RegressFlag:      flag,
		ChangedAt:        dto.ChangedAt,
	}, nil
}

func mapInsuredEventDTOs(dtos []insuredEventDTO) ([]insuredevent.InsuredEvent, error) {
	items := make([]insuredevent.InsuredEvent, 0, len(dtos))
	for _, dto := range dtos {
		item, err := mapInsuredEventDTO(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func mapFilterDictionariesDTO(dto filterDictionariesDTO) (insuredevent.FilterDictionaries, error) {
	if dto.Data == nil && hasAPIError(dto.Error) {
		return insuredevent.FilterDictionaries{}, &APIError{Endpoint: "filter-dictionaries", Detail: string(dto.Error)}
	}

	out := insuredevent.FilterDictionaries{
		InsuranceTypes: []string{},
		EventStatuses:  []string{},
	}
	if dto.Data == nil {
		return out, nil
	}
	if dto.Data.InsuranceKids != nil {
		out.InsuranceTypes = dto.Data.InsuranceKids
	}
	if dto.Data.LossStatuses != nil {
		out.EventStatuses = dto.Data.LossStatuses
	}
	return out, nil
}

func hasAPIError(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

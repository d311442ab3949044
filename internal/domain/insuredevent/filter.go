package insuredevent

// Filter is a sparse set of search predicates. An empty field places no constraint.
type Filter struct {
	InsuranceType  string `json:"insuranceType,omitempty" jsonschema:"title=Insurance type"`
	Insurant       string `json:"insurant,omitempty" jsonschema:"title=Insured party"`
	ContractNumber string `json:"contractNumber,omitempty" jsonschema:"title=Contract number"`
	EventStatus    string `json:"eventStatus,omitempty" jsonschema:"title=Event status"`
	PayoutDecision string `json:"payoutDecision,omitempty" jsonschema:"title=Payout decision"`
	PeriodFrom     string `json:"periodFrom,omitempty" jsonschema:"title=Period from,format=date"`
	PeriodTo       string `json:"periodTo,omitempty" jsonschema:"title=Period to,format=date"`
}

// FilterDictionaries holds the vocabularies used to populate select filters.
type FilterDictionaries struct {
	InsuranceTypes []string `json:"insuranceTypes"`
	EventStatuses  []string `json:"eventStatuses"`
}

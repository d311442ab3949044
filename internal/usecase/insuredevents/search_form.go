package insuredevents

import (
	"context"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/formschema"
)

// SearchLookups are the option sets of the select filters.
type SearchLookups struct {
	InsuranceTypes  []formschema.Option
	EventStatuses   []formschema.Option
	PayoutDecisions []formschema.Option
}

// SearchFormBuilder builds the insured events filters form.
// Call WithLookups before AddFilters; without lookups the selects get empty option sets.
type SearchFormBuilder struct {
	*formschema.Builder
	lookups SearchLookups
}

func NewSearchFormBuilder() *SearchFormBuilder {
	return &SearchFormBuilder{Builder: formschema.NewBuilder()}
}

func (b *SearchFormBuilder) WithLookups(lookups SearchLookups) *SearchFormBuilder {
	b.lookups = lookups
	return b
}

// AddFilters appends the filter rows. Field keys match the search query keys.
func (b *SearchFormBuilder) AddFilters() *SearchFormBuilder {
	b.AddRow([]formschema.Field{
		formschema.Select("insuranceType", "col-md-4", formschema.Props{
			Label:       "Insurance type",
			Placeholder: "Any",
			Options:     optionsOrEmpty(b.lookups.InsuranceTypes),
		}),
		formschema.Input("insurant", "col-md-4", formschema.Props{
			Label:       "Insured party",
			Placeholder: "Full name",
		}),
		formschema.Input("contractNumber", "col-md-4", formschema.Props{
			Label: "Contract number",
		}),
	})
	b.AddRow([]formschema.Field{
		formschema.Select("eventStatus", "col-md-3", formschema.Props{
			Label:       "Event status",
			Placeholder: "Any",
			Options:     optionsOrEmpty(b.lookups.EventStatuses),
		}),
		formschema.Select("payoutDecision", "col-md-3", formschema.Props{
			Label:       "Payout decision",
			Placeholder: "Any",
			Options:     optionsOrEmpty(b.lookups.PayoutDecisions),
		}),
		formschema.DatePicker("periodFrom", "col-md-3", formschema.Props{Label: "Period from"}),
		formschema.DatePicker("periodTo", "col-md-3", formschema.Props{Label: "Period to"},
			formschema.WithExpressions(formschema.Expressions{"props.disabled": "!model.periodFrom"}),
		),
	})
	return b
}

// BuildCompleteFiltersForm adds the filters and returns the resulting tree.
func (b *SearchFormBuilder) BuildCompleteFiltersForm() []formschema.Field {
	return b.AddFilters().Build()
}

// CreateFilters builds the filters form from already loaded option sets.
func CreateFilters(insuranceTypes, eventStatuses, payoutDecisions []formschema.Option) []formschema.Field {
	return NewSearchFormBuilder().
		WithLookups(SearchLookups{
			InsuranceTypes:  insuranceTypes,
			EventStatuses:   eventStatuses,
			PayoutDecisions: payoutDecisions,
		}).
		BuildCompleteFiltersForm()
}

// CreateFromFacade loads the dictionaries and builds the filters form from them.
// Payout decisions have no dictionary yet and get an empty option set.
func CreateFromFacade(ctx context.Context, facade *Facade) ([]formschema.Field, error) {
	dicts, err := facade.GetFilterDictionaries(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "load filter dictionaries")
	}
	return CreateFiltersFromDictionaries(dicts), nil
}

func CreateFiltersFromDictionaries(dicts insuredevent.FilterDictionaries) []formschema.Field {
	return CreateFilters(
		formschema.OptionsFromStrings(dicts.InsuranceTypes),
		formschema.OptionsFromStrings(dicts.EventStatuses),
		[]formschema.Option{},
	)
}

func optionsOrEmpty(options []formschema.Option) []formschema.Option {
	if options == nil {
		return []formschema.Option{}
	}
	return options
}

package formschema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestAddRowWrapsChildrenInOrder(t *testing.T) {
	a := Input("insurant", "col-4", Props{Label: "Insured party"})
	b := Select("eventStatus", "col-4", Props{Label: "Status"})

	fields := NewBuilder().AddRow([]Field{a, b}).Build()

	if len(fields) != 1 {
		t.Fatalf("len(fields) = %d, want 1", len(fields))
	}
	row := fields[0]
	if !row.IsGroup() || row.FieldGroupClassName != RowClassName || row.Key != "" {
		t.Fatalf("row = %+v, want keyless group with class row", row)
	}
	if !reflect.DeepEqual(row.FieldGroup, []Field{a, b}) {
		t.Fatalf("children = %+v, want [a b]", row.FieldGroup)
	}
}

func TestBuildReturnsIndependentSnapshots(t *testing.T) {
	builder := NewBuilder().AddInput("contractNumber", "", Props{Label: "Contract"})

	first := builder.Build()
	builder.AddSelect("insuranceType", "", Props{Options: []Option{{Label: "A", Value: "A"}}})
	second := builder.Build()

	if len(first) != 1 || len(second) != 2 {
		t.Fatalf("len(first)=%d len(second)=%d, want 1 and 2", len(first), len(second))
	}
	if !reflect.DeepEqual(first[0], second[0]) {
		t.Fatalf("later snapshot must extend the earlier one")
	}

	second[1].Props.Options[0].Label = "changed"
	second[0].Props.Label = "changed"
	third := builder.Build()
	if third[1].Props.Options[0].Label != "A" || third[0].Props.Label != "Contract" || first[0].Props.Label != "Contract" {
		t.Fatalf("mutating a snapshot leaked into the builder")
	}
}

func TestFieldKindsProduceTypeTags(t *testing.T) {
	fields := NewBuilder().
		AddHeading("title", "Insured events", "h4", Props{Label: "ignored"}).
		AddInput("insurant", "", Props{}).
		AddSelect("insuranceType", "", Props{}).
		AddDatePicker("periodFrom", "", Props{}).
		AddDatePicker("periodTo", "", Props{}, WithISODate()).
		AddTextArea("comment", "", Props{}).
		AddRadio("regressFlag", "", Props{}).
		AddCheckBox("onlyOpen", "", Props{}).
		AddFileUpload("attachment", "", Props{}).
		AddAutocomplete("product", "", Props{}).
		AddTooltip("hint", Props{Description: "Dates are inclusive"}).
		AddText("note", "", Props{}).
		AddLinkText("help", "", Props{Href: "/help"}).
		AddGroup("d-flex gap-2", []Field{}).
		Build()

	wantTypes := []string{
		TypeHeading, TypeInput, TypeSelect, TypeFormattedDate, TypeISODatePicker, TypeTextArea,
		TypeRadio, TypeCheckBox, TypeFileUpload, TypeAutocomplete, TypeTooltip, TypeText, TypeLinkText, "",
	}
	if len(fields) != len(wantTypes) {
		t.Fatalf("len(fields) = %d, want %d", len(fields), len(wantTypes))
	}
	for i, want := range wantTypes {
		if fields[i].Type != want {
			t.Fatalf("fields[%d].Type = %q, want %q", i, fields[i].Type, want)
		}
	}
	if fields[0].Props.Label != "Insured events" {
		t.Fatalf("heading label = %q", fields[0].Props.Label)
	}
	if fields[10].Key != "" {
		t.Fatalf("tooltip key = %q, want empty", fields[10].Key)
	}
	if !fields[13].IsGroup() || fields[13].FieldGroupClassName != "d-flex gap-2" {
		t.Fatalf("group = %+v", fields[13])
	}
	if err := Validate(fields); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestFieldOptions(t *testing.T) {
	fields := NewBuilder().
		AddSelect("eventStatus", "", Props{Required: true},
			WithValidation(map[string]string{"required": "Select a status"}),
			WithExpressions(Expressions{"props.disabled": "!model.insuranceType"}),
			WithDefault("OPEN"),
		).
		Build()

	field := fields[0]
	if field.Validation == nil || field.Validation.Messages["required"] != "Select a status" {
		t.Fatalf("validation = %+v", field.Validation)
	}
	if field.Expressions["props.disabled"] != "!model.insuranceType" {
		t.Fatalf("expressions = %+v", field.Expressions)
	}
	if field.DefaultValue != "OPEN" {
		t.Fatalf("default = %v", field.DefaultValue)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	for _, want := range []string{`"type":"formly-float-select"`, `"defaultValue":"OPEN"`, `"required":true`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("json %s missing %s", raw, want)
		}
	}
}

func TestValidateRejectsDuplicateKeys(t *testing.T) {
	fields := NewBuilder().
		AddInput("insurant", "", Props{}).
		AddRow([]Field{Input("insurant", "", Props{})}).
		Build()

	if err := Validate(fields); err == nil || !strings.Contains(err.Error(), "insurant") {
		t.Fatalf("Validate() error = %v, want duplicate key error", err)
	}
}

func TestOptionsFromStrings(t *testing.T) {
	got := OptionsFromStrings([]string{"X", "Y"})
	want := []Option{{Label: "X", Value: "X"}, {Label: "Y", Value: "Y"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("OptionsFromStrings() = %+v, want %+v", got, want)
	}

	empty := OptionsFromStrings(nil)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("OptionsFromStrings(nil) = %#v, want empty non-nil", empty)
	}
}

func TestEmptyBuilderBuildsEmptyList(t *testing.T) {
	fields := NewBuilder().Build()
	if fields == nil || len(fields) != 0 {
		t.Fatalf("Build() = %#v, want empty non-nil", fields)
	}
}

// Package formschema describes forms as renderer-agnostic field trees.
//
// A Field is either a leaf (Key, Type and Props set) or a group (FieldGroup set).
// The rendering layer maps each Type tag onto an input widget; nothing here renders.
package formschema

import (
	"fmt"
	"maps"
	"slices"
)

// Type tags understood by the form renderer.
const (
	TypeHeading       = "formly-heading-component"
	TypeInput         = "formly-input-component"
	TypeSelect        = "formly-float-select"
	TypeISODatePicker = "formly-iso-datepicker-component"
	TypeFormattedDate = "formly-formatted-datepicker"
	TypeTextArea      = "formly-textarea-component"
	TypeRadio         = "formly-radio-button"
	TypeCheckBox      = "formly-checkbox-component"
	TypeFileUpload    = "formly-file-upload"
	TypeAutocomplete  = "formly-autocomplete-select"
	TypeTooltip       = "formly-tooltip-component"
	TypeText          = "formly-text-component"
	TypeLinkText      = "formly-link-text-component"
	RowClassName      = "row"
)

// Option is one choice of a select, radio or autocomplete field.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Options is the option set of a choice field. A nil set is left out of the
// serialized tree; an empty one encodes as [] so the renderer still gets a select without choices.
type Options []Option

// IsZero drives omitzero (encoding/json) and omitempty (yaml.v3): only nil is omitted.
func (o Options) IsZero() bool {
	return o == nil
}

// Props are the presentation properties of a leaf field.
type Props struct {
	Label       string  `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string  `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Href        string  `json:"href,omitempty" yaml:"href,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled    bool    `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Multiple    bool    `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Options     Options `json:"options,omitzero" yaml:"options,omitempty"`
}

// Validation carries per-rule messages shown by the renderer, keyed by rule name.
type Validation struct {
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Expressions are renderer-evaluated conditions keyed by the property they drive,
// e.g. "props.disabled": "!model.insuranceType".
type Expressions map[string]string

// Field is one node of the form tree.
type Field struct {
	Key                 string      `json:"key,omitempty" yaml:"key,omitempty"`
	Type                string      `json:"type,omitempty" yaml:"type,omitempty"`
	ClassName           string      `json:"className,omitempty" yaml:"className,omitempty"`
	Props               *Props      `json:"props,omitempty" yaml:"props,omitempty"`
	Validation          *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
	Expressions         Expressions `json:"expressions,omitempty" yaml:"expressions,omitempty"`
	DefaultValue        any         `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	FieldGroupClassName string      `json:"fieldGroupClassName,omitempty" yaml:"fieldGroupClassName,omitempty"`
	FieldGroup          []Field     `json:"fieldGroup,omitempty" yaml:"fieldGroup,omitempty"`
}

func (f Field) IsGroup() bool {
	return f.FieldGroup != nil
}

// Clone deep-copies the node and its children.
func (f Field) Clone() Field {
	out := f
	if f.Props != nil {
		props := *f.Props
		props.Options = slices.Clone(f.Props.Options)
		out.Props = &props
	}
	if f.Validation != nil {
		out.Validation = &Validation{Messages: maps.Clone(f.Validation.Messages)}
	}
	out.Expressions = maps.Clone(f.Expressions)
	out.FieldGroup = cloneFields(f.FieldGroup)
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}

// Validate checks that leaf keys are unique across the whole tree.
func Validate(fields []Field) error {
	seen := make(map[string]struct{})
	return validateKeys(fields, seen)
}

func validateKeys(fields []Field, seen map[string]struct{}) error {
	for _, field := range fields {
		if field.IsGroup() {
			if field.Key != "" {
				return fmt.Errorf("group %q must not have a key", field.Key)
			}
			if err := validateKeys(field.FieldGroup, seen); err != nil {
				return err
			}
			continue
		}
		if field.Key == "" {
			continue
		}
		if _, ok := seen[field.Key]; ok {
			return fmt.Errorf("duplicate field key %q", field.Key)
		}
		seen[field.Key] = struct{}{}
	}
	return nil
}

// OptionsFromStrings turns plain values into options whose label equals the value, in source order.
// A nil input yields an empty, non-nil slice.
func OptionsFromStrings(values []string) []Option {
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Label: v, Value: v})
	}
	return options
}

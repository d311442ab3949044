package formschema

// FieldOption sets an optional part of a leaf field.
type FieldOption func(*Field)

func WithValidation(messages map[string]string) FieldOption {
	return func(f *Field) {
		f.Validation = &Validation{Messages: messages}
	}
}

func WithExpressions(expressions Expressions) FieldOption {
	return func(f *Field) {
		f.Expressions = expressions
	}
}

func WithDefault(value any) FieldOption {
	return func(f *Field) {
		f.DefaultValue = value
	}
}

// WithISODate makes a date picker bind an ISO-8601 value instead of a formatted string.
func WithISODate() FieldOption {
	return func(f *Field) {
		if f.Type == TypeFormattedDate {
			f.Type = TypeISODatePicker
		}
	}
}

// Builder accumulates form nodes in order. Methods chain; Build returns a snapshot.
type Builder struct {
	fields []Field
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) addField(field Field, opts ...FieldOption) *Builder {
	for _, opt := range opts {
		opt(&field)
	}
	b.fields = append(b.fields, field)
	return b
}

func (b *Builder) addFieldGroup(className string, fields []Field) *Builder {
	group := make([]Field, 0, len(fields))
	group = append(group, cloneFields(fields)...)
	b.fields = append(b.fields, Field{
		FieldGroupClassName: className,
		FieldGroup:          group,
	})
	return b
}

func leaf(key string, fieldType string, className string, props Props) Field {
	return Field{
		Key:       key,
		Type:      fieldType,
		ClassName: className,
		Props:     &props,
	}
}

// AddHeading adds a section title; label overrides props.Label.
func (b *Builder) AddHeading(key string, label string, className string, props Props) *Builder {
	props.Label = label
	return b.addField(leaf(key, TypeHeading, className, props))
}

func (b *Builder) AddInput(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeInput, className, props), opts...)
}

func (b *Builder) AddSelect(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeSelect, className, props), opts...)
}

// AddDatePicker adds a formatted date picker; pass WithISODate for an ISO-bound one.
func (b *Builder) AddDatePicker(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeFormattedDate, className, props), opts...)
}

func (b *Builder) AddTextArea(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeTextArea, className, props), opts...)
}

func (b *Builder) AddRadio(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeRadio, className, props), opts...)
}

func (b *Builder) AddCheckBox(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeCheckBox, className, props), opts...)
}

func (b *Builder) AddFileUpload(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeFileUpload, className, props), opts...)
}

func (b *Builder) AddAutocomplete(key string, className string, props Props, opts ...FieldOption) *Builder {
	return b.addField(leaf(key, TypeAutocomplete, className, props), opts...)
}

// AddTooltip adds a hint. Tooltips are not bound to the model and carry no key.
func (b *Builder) AddTooltip(className string, props Props) *Builder {
	return b.addField(leaf("", TypeTooltip, className, props))
}

func (b *Builder) AddText(key string, className string, props Props) *Builder {
	return b.addField(leaf(key, TypeText, className, props))
}

func (b *Builder) AddLinkText(key string, className string, props Props) *Builder {
	return b.addField(leaf(key, TypeLinkText, className, props))
}

// AddRow lays fields out side by side.
func (b *Builder) AddRow(fields []Field) *Builder {
	return b.addFieldGroup(RowClassName, fields)
}

func (b *Builder) AddGroup(className string, fields []Field) *Builder {
	return b.addFieldGroup(className, fields)
}

// AddCustomField appends a node as is, for types this builder has no method for.
func (b *Builder) AddCustomField(field Field) *Builder {
	return b.addField(field.Clone())
}

// Build returns a copy of the accumulated nodes. Later calls on the builder do not change it.
func (b *Builder) Build() []Field {
	if len(b.fields) == 0 {
		return []Field{}
	}
	return cloneFields(b.fields)
}

// Input, Select and DatePicker build standalone leaves for AddRow and AddGroup.

func Input(key string, className string, props Props, opts ...FieldOption) Field {
	return NewBuilder().AddInput(key, className, props, opts...).fields[0]
}

func Select(key string, className string, props Props, opts ...FieldOption) Field {
	return NewBuilder().AddSelect(key, className, props, opts...).fields[0]
}

func DatePicker(key string, className string, props Props, opts ...FieldOption) Field {
	return NewBuilder().AddDatePicker(key, className, props, opts...).fields[0]
}

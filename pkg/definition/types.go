package definition

// FieldKind selects how a field collects its value.
type FieldKind string

const (
	// KindText is a free-text input.
	KindText FieldKind = "text"
	// KindSelect is a drop-down with a fixed option list.
	KindSelect FieldKind = "select"
	// KindChoice is an exclusive-choice group (radio buttons sharing a name).
	// A step cannot be left until one option is selected.
	KindChoice FieldKind = "choice"
)

// Definition describes the complete fixed pipeline: the ordered steps, their
// fields, the discriminant selection and the submission messages.
type Definition struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Steps        []Step       `json:"steps" yaml:"steps"`
	Discriminant Discriminant `json:"discriminant" yaml:"discriminant"`
	Messages     Messages     `json:"messages" yaml:"messages"`
	Source       string       `json:"-" yaml:"-"`
}

// Step groups the fields shown together on one screen.
type Step struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field configures a single input. VisibleWhen is an optional rule over other
// field values (see package visibility/expr); while it is false the field is
// hidden and not required.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Format      string    `json:"format,omitempty" yaml:"format,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	OmitEmpty   bool      `json:"omitEmpty,omitempty" yaml:"omitEmpty,omitempty"`
	VisibleWhen string    `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
}

// Option is one selectable value of a select or choice field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Discriminant names the choice field that toggles the dependent fields. When
// the field holds Individual the dependents are hidden and not required.
type Discriminant struct {
	Field      string   `json:"field" yaml:"field"`
	Individual string   `json:"individual" yaml:"individual"`
	Dependents []string `json:"dependents" yaml:"dependents"`
}

// Messages are the only two texts a user sees after submitting.
type Messages struct {
	Success string `json:"success" yaml:"success"`
	Failure string `json:"failure" yaml:"failure"`
}

// Enabled reports whether a discriminant is configured.
func (d Discriminant) Enabled() bool {
	return d.Field != ""
}

// OptionLabel returns the option label for value, or value itself when the option
// is unknown.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	return value
}

// HasOption reports whether value is one of the field's options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// FieldByID walks the steps and returns the matching field definition.
func (d Definition) FieldByID(id string) (Field, bool) {
	for _, step := range d.Steps {
		for _, field := range step.Fields {
			if field.ID == id {
				return field, true
			}
		}
	}
	return Field{}, false
}

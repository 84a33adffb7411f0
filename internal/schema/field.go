package schema

// Kind is the storage type of a form field.
type Kind int

const (
	// Text fields default to "".
	Text Kind = iota
	// Flag fields are checkboxes and default to false.
	Flag
	// Amount fields keep the text the applicant typed; they are parsed to a
	// decimal only when the record is built.
	Amount
)

func (k Kind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Amount:
		return "amount"
	default:
		return "text"
	}
}

// Condition controls when a field applies at all.
type Condition int

const (
	Always Condition = iota
	// WhenReplacement fields are only shown and validated for replacement cards.
	WhenReplacement
)

// Field describes one entry on the application form.
type Field struct {
	Name      string // JSON key used by the form and the API
	Label     string // label printed on the document
	Kind      Kind
	Condition Condition
	Required  bool
	Email     bool   // value must look like local@domain.tld when present
	Message   string // validation message when Required fails
	Inline    bool   // drawn on the same line as the previous field
}

// Section is a titled group of fields. Sections are listed in the order
// they appear on the paper form.
type Section struct {
	Title  string
	Fields []Field
}

// Applies reports whether the field is relevant for the given payload.
func (f Field) Applies(v Values) bool {
	if f.Condition == WhenReplacement {
		return v.IsReplacement()
	}
	return true
}

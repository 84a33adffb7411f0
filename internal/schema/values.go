package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fbcbank/card-intake/internal/domain"
)

// Values is the typed intake payload: one entry per schema field, with the
// field's default standing in for anything that was never set. Only fields
// known to the schema can be stored.
type Values struct {
	m map[string]any
}

// NewValues returns an empty payload; every field reads as its default.
func NewValues() Values {
	return Values{m: make(map[string]any)}
}

// FormDefaults returns the payload a blank form starts with.
func FormDefaults() Values {
	v := NewValues()
	v.m[FieldApplicationStatus] = string(domain.StatusNewCard)
	return v
}

// Text returns the string value of a Text or Amount field, or "" when unset.
func (v Values) Text(name string) string {
	s, _ := v.m[name].(string)
	return s
}

// Flag returns the value of a Flag field, or false when unset.
func (v Values) Flag(name string) bool {
	b, _ := v.m[name].(bool)
	return b
}

// IsSet reports whether the field was explicitly provided.
func (v Values) IsSet(name string) bool {
	_, ok := v.m[name]
	return ok
}

// IsReplacement reports whether the payload is for a replacement card.
func (v Values) IsReplacement() bool {
	return v.Text(FieldApplicationStatus) == string(domain.StatusReplacementCard)
}

// Set replaces a single field. Text fields take a string, Flag fields a
// bool, Amount fields a string or any numeric value.
func (v *Values) Set(name string, value any) error {
	f, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if v.m == nil {
		v.m = make(map[string]any)
	}

	switch f.Kind {
	case Flag:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a bool, got %T", ErrFieldType, name, value)
		}
		v.m[name] = b
	case Amount:
		s, ok := amountText(value)
		if !ok {
			return fmt.Errorf("%w: %s expects a number or string, got %T", ErrFieldType, name, value)
		}
		v.m[name] = s
	default:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrFieldType, name, value)
		}
		v.m[name] = s
	}
	return nil
}

func amountText(value any) (string, bool) {
	switch n := value.(type) {
	case string:
		return n, true
	case decimal.Decimal:
		return n.String(), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case json.Number:
		return n.String(), true
	}
	return "", false
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	c := NewValues()
	for k, val := range v.m {
		c.m[k] = val
	}
	return c
}

// MarshalJSON writes every schema field, defaults included, so the wire
// payload always has the full form shape.
func (v Values) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(order))
	for _, f := range order {
		if f.Kind == Flag {
			out[f.Name] = v.Flag(f.Name)
		} else {
			out[f.Name] = v.Text(f.Name)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object. Unknown keys are dropped, nulls and
// values of an unusable shape fall back to the field default, and scalars
// are coerced to the field's kind.
func (v *Values) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	v.m = make(map[string]any, len(raw))
	for name, val := range raw {
		f, ok := Lookup(name)
		if !ok || val == nil {
			continue
		}
		if f.Kind == Flag {
			if b, ok := coerceFlag(val); ok {
				v.m[name] = b
			}
			continue
		}
		if s, ok := coerceText(val); ok {
			v.m[name] = s
		}
	}
	return nil
}

func coerceText(val any) (string, bool) {
	switch t := val.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

func coerceFlag(val any) (bool, bool) {
	switch t := val.(type) {
	case bool:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "on":
			return true, true
		}
		return false, true
	}
	return false, false
}

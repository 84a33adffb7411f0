package schema

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InvalidEmailMessage is reported when a non-empty email does not look like
// local@domain.tld.
const InvalidEmailMessage = "Invalid email format"

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Looser than the built-in "email" tag: anything shaped like a@b.c passes.
	if err := v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered set of rule failures for a payload. An empty set
// means the form may be submitted.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the failure the user should be taken to.
func (e Errors) First() (FieldError, bool) {
	if len(e) == 0 {
		return FieldError{}, false
	}
	return e[0], true
}

// Map returns field -> message.
func (e Errors) Map() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// Validate runs the form rules: unconditional required fields first, then
// the replacement-only required fields, then the email format check.
func Validate(v Values) Errors {
	var errs Errors

	for _, pass := range []Condition{Always, WhenReplacement} {
		for _, f := range order {
			if !f.Required || f.Condition != pass || !f.Applies(v) {
				continue
			}
			if validate.Var(v.Text(f.Name), "required") != nil {
				errs = append(errs, FieldError{Field: f.Name, Message: f.Message})
			}
		}
	}

	for _, f := range order {
		if !f.Email {
			continue
		}
		if validate.Var(v.Text(f.Name), "omitempty,basic_email") != nil {
			errs = append(errs, FieldError{Field: f.Name, Message: InvalidEmailMessage})
		}
	}
	return errs
}

package leads

import (
	"errors"
	"strings"

	"go.uber.org/multierr"
)

// ErrUnconfigured is returned when no webhook URL is set.
var ErrUnconfigured = errors.New("leads: crm webhook not configured")

// FieldError describes one invalid form field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string { return e.Field + " " + e.Reason }

// ValidationError collects every FieldError of a submission.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0)
	for _, f := range e.Fields() {
		msgs = append(msgs, f.Error())
	}
	return "leads: invalid submission: " + strings.Join(msgs, "; ")
}

// Fields lists the invalid fields in validation order.
func (e *ValidationError) Fields() []*FieldError {
	var out []*FieldError
	for _, err := range multierr.Errors(e.err) {
		var fe *FieldError
		if errors.As(err, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

func asValidation(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{err: err}
}

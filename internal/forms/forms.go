// Package forms holds the catalog's form payloads and their
// validation rules. Each form validates as an ordered list of checks
// evaluated eagerly; the first failure per field wins, and the result
// is a flat list of field-level errors for the template to render.
package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError names one failing field and the message shown next to it.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the bundle handed back to a re-rendered form.
type Errors []FieldError

// Has reports whether field already failed a check.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Add appends an error unless the field already has one, so the
// first failing rule per field is the one reported.
func (e Errors) Add(field, message string) Errors {
	if e.Has(field) {
		return e
	}
	return append(e, FieldError{Field: field, Message: message})
}

type check struct {
	field   string
	value   string
	tag     string
	message string
}

// run evaluates checks in order through the validator's tag engine.
func run(checks []check) Errors {
	var errs Errors
	for _, c := range checks {
		if errs.Has(c.field) {
			continue
		}
		if err := validate.Var(c.value, c.tag); err != nil {
			errs = errs.Add(c.field, c.message)
		}
	}
	return errs
}

func trim(s string) string { return strings.TrimSpace(s) }

// Package validation holds the shared validator instance used by the
// database layer to enforce field constraints at write time.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// The schema's email constraint: something@something.something. Deliberately
// loose, it mirrors the pattern the comments table was created with.
var simpleEmailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for a blank tag or nil func.
	if err := v.RegisterValidation("simple_email", isSimpleEmail); err != nil {
		panic(err)
	}
	return v
}

func isSimpleEmail(fl validator.FieldLevel) bool {
	return simpleEmailRe.MatchString(fl.Field().String())
}

// Struct validates a model against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// FirstViolation extracts the field and tag of the first constraint
// violation, for building a user-facing error. ok is false when err is not a
// validator error.
func FirstViolation(err error) (field, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	return verrs[0].Field(), verrs[0].Tag(), true
}

package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field rules mirror the storage column sizes. Text columns also reject NUL,
// which PostgreSQL cannot store.
const (
	ruleName     = "required,max=255,nonul"
	rulePastorID = "max=32,nonul"
	ruleGender   = "max=12,nonul"
	ruleIDNo     = "max=64,nonul"
	ruleDate     = "max=32,nonul"
	ruleCount    = "min=0"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	}); err != nil {
		panic(err)
	}
	return v
}

// fieldErrors collects validation failures keyed by wire field name.
type fieldErrors map[string]string

// check validates value against tag and records the first failure under field.
func (fe fieldErrors) check(field string, value interface{}, tag string) {
	if _, exists := fe[field]; exists {
		return
	}
	err := validate.Var(value, tag)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe[field] = formatFieldError(verrs[0])
		return
	}
	fe[field] = err.Error()
}

// checkOptional validates *value when it is set.
func (fe fieldErrors) checkOptional(field string, value *string, tag string) {
	if value != nil {
		fe.check(field, *value, tag)
	}
}

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// formatFieldError converts a validator.FieldError to the short reason sent
// to clients.
func formatFieldError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "required"
	case "max":
		return "must be at most " + err.Param() + " characters"
	case "min":
		return "must be at least " + err.Param()
	case "nonul":
		return "must not contain NUL characters"
	default:
		return "invalid (" + err.Tag() + ")"
	}
}

// trimmed returns the value with surrounding whitespace removed, treating
// nil as empty.
func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

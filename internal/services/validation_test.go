package services

import (
	"reflect"
	"strings"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
)

func TestFormatFieldError(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		param    string
		expected string
	}{
		{name: "required", tag: "required", expected: "required"},
		{name: "max", tag: "max", param: "255", expected: "must be at most 255 characters"},
		{name: "min", tag: "min", param: "0", expected: "must be at least 0"},
		{name: "nonul", tag: "nonul", expected: "must not contain NUL characters"},
		{name: "unknown", tag: "email", expected: "invalid (email)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatFieldError(&mockFieldError{tag: tt.tag, param: tt.param})
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFieldErrors_KeepsFirstFailure(t *testing.T) {
	errs := fieldErrors{}
	errs.check("name", "", ruleName)
	errs.check("name", "this one passes", ruleName)

	err := errs.err()
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["name"])
}

func TestFieldErrors_CheckOptionalSkipsNil(t *testing.T) {
	errs := fieldErrors{}
	errs.checkOptional("gender", nil, ruleGender)

	assert.NoError(t, errs.err())
}

func TestFieldErrors_CountsRunes(t *testing.T) {
	errs := fieldErrors{}
	// 12 characters, more than 12 bytes
	errs.check("gender", strings.Repeat("é", 12), ruleGender)

	assert.NoError(t, errs.err())
}

func TestFieldErrors_RejectsNUL(t *testing.T) {
	tests := []struct {
		field string
		value string
		rule  string
	}{
		{field: "name", value: "\x00bad", rule: ruleName},
		{field: "pastorId", value: "pas\x00", rule: rulePastorID},
		{field: "gender", value: "M\x00", rule: ruleGender},
		{field: "idNo", value: "GH\x00-1", rule: ruleIDNo},
		{field: "yearOfBirth", value: "19\x0060", rule: ruleDate},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			errs := fieldErrors{}
			errs.check(tt.field, tt.value, tt.rule)

			var verr *ValidationError
			assert.ErrorAs(t, errs.err(), &verr)
			assert.Equal(t, "must not contain NUL characters", verr.Fields[tt.field])
		})
	}
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"name":        "required",
		"churchCount": "must be at least 0",
	}}

	assert.Equal(t, "validation failed: churchCount: must be at least 0, name: required", err.Error())
}

// mockFieldError is a mock implementation of validator.FieldError for testing.
type mockFieldError struct {
	tag   string
	param string
}

func (m *mockFieldError) Tag() string                    { return m.tag }
func (m *mockFieldError) ActualTag() string              { return m.tag }
func (m *mockFieldError) Namespace() string              { return "" }
func (m *mockFieldError) StructNamespace() string        { return "" }
func (m *mockFieldError) Field() string                  { return "TestField" }
func (m *mockFieldError) StructField() string            { return "TestField" }
func (m *mockFieldError) Value() interface{}             { return nil }
func (m *mockFieldError) Param() string                  { return m.param }
func (m *mockFieldError) Kind() reflect.Kind             { return reflect.String }
func (m *mockFieldError) Type() reflect.Type             { return nil }
func (m *mockFieldError) Translate(ut.Translator) string { return "" }
func (m *mockFieldError) Error() string                  { return "" }

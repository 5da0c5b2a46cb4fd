package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Optional records whether a JSON field was present in a request body.
// Set is false when the key was omitted; Value is nil when it was null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys
// that appear in the payload, which is what marks the field as Set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// OrZero returns the held value or T's zero value.
func (o Optional[T]) OrZero() T {
	if o.Value == nil {
		var zero T
		return zero
	}
	return *o.Value
}

// LooseInt is an integer field that tolerates the loose payloads clients send:
// numbers, numeric strings, booleans or null. Falsy inputs (null, false, 0,
// "") leave Value nil; everything else is coerced to an int. Set reports
// whether the key was present at all.
type LooseInt struct {
	Set   bool
	Value *int
}

// IntValue returns a present LooseInt holding n.
func IntValue(n int) LooseInt {
	return LooseInt{Set: true, Value: &n}
}

// OrZero returns the coerced value, or 0 for absent and falsy inputs.
func (l LooseInt) OrZero() int {
	if l.Value == nil {
		return 0
	}
	return *l.Value
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseInt) UnmarshalJSON(data []byte) error {
	l.Set = true
	l.Value = nil

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		return nil
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		if v {
			n := 1
			l.Value = &n
		}
		return nil
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return intTypeError("number " + v.String())
		}
		if f == 0 {
			return nil
		}
		n := int(math.Trunc(f))
		l.Value = &n
		return nil
	case string:
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return intTypeError("string")
		}
		l.Value = &n
		return nil
	default:
		return intTypeError(jsonKind(v))
	}
}

// intTypeError reports a value that cannot become an int. encoding/json adds
// the offending field name to it.
func intTypeError(value string) error {
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeFor[int]()}
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

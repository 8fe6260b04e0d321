package schema

import (
	"math"
	"reflect"

	"github.com/goccy/go-json"
)

// Kind is the primitive category a field value is expected to have.
type Kind int

// Supported kinds. They mirror the value categories a JSON document can carry.
const (
	String Kind = iota + 1
	Number
	Integer
	Boolean
	Object
	Array
)

// String returns the lower-case name used in violation messages.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// phrase is the tail of a "must be ..." violation message.
func (k Kind) phrase() string {
	switch k {
	case String:
		return "a string"
	case Number:
		return "a number"
	case Integer:
		return "an integer number"
	case Boolean:
		return "a boolean value"
	case Object:
		return "an object"
	case Array:
		return "an array"
	default:
		return "a known type"
	}
}

// Matches reports whether v belongs to the category k.
func (k Kind) Matches(v any) bool {
	switch k {
	case String:
		_, ok := v.(string)
		return ok
	case Number:
		return isNumber(v)
	case Integer:
		return isInteger(v)
	case Boolean:
		_, ok := v.(bool)
		return ok
	case Object:
		_, ok := v.(map[string]any)
		return ok
	case Array:
		if _, ok := v.([]any); ok {
			return true
		}
		rv := reflect.ValueOf(v)
		return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case float64:
		return !math.IsInf(n, 0) && n == math.Trunc(n)
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

type constraintKind int

const (
	constraintRequired constraintKind = iota + 1
	constraintType
	constraintRule
)

// Constraint is one structural check attached to a field. Build values with
// Required, TypeIs and Rule.
type Constraint struct {
	kind constraintKind
	typ  Kind
	rule string
}

// Required marks a field as mandatory. Missing and null values violate it
// unless the evaluation skips missing properties.
func Required() Constraint {
	return Constraint{kind: constraintRequired}
}

// TypeIs checks the runtime category of a present value.
func TypeIs(k Kind) Constraint {
	return Constraint{kind: constraintType, typ: k}
}

// Rule attaches a go-playground/validator tag such as "min=1,max=200".
// Rules only run on present values that passed every TypeIs check.
func Rule(tag string) Constraint {
	return Constraint{kind: constraintRule, rule: tag}
}

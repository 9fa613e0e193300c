package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CoarseType is the lightweight type tag used for contract comparison.
type CoarseType string

const (
	TypeString CoarseType = "string"
	TypeInt    CoarseType = "int"
	TypeFloat  CoarseType = "float"
	TypeBool   CoarseType = "bool"
	TypeList   CoarseType = "list"
	TypeObject CoarseType = "object"
	TypeNull   CoarseType = "null"
)

// ParseCoarseType validates a type tag as written in a schema declaration.
// "dict" is accepted as an alias for "object".
func ParseCoarseType(tag string) (CoarseType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "string", "str":
		return TypeString, nil
	case "int", "integer":
		return TypeInt, nil
	case "float", "number":
		return TypeFloat, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "list", "array":
		return TypeList, nil
	case "object", "dict", "map":
		return TypeObject, nil
	case "null":
		return TypeNull, nil
	default:
		return "", fmt.Errorf("unknown coarse type %q", tag)
	}
}

// CoarseTypeOf maps a decoded JSON value to its coarse type. Numbers must be
// json.Number (decode with UseNumber); a number is an int when its lexical
// form has no fractional part.
func CoarseTypeOf(value any) CoarseType {
	switch v := value.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case string:
		return TypeString
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return TypeInt
		}
		return TypeFloat
	case float64:
		// Tolerate bodies decoded without UseNumber.
		if v == float64(int64(v)) {
			return TypeInt
		}
		return TypeFloat
	case []any:
		return TypeList
	case map[string]any:
		return TypeObject
	default:
		return TypeObject
	}
}

// FieldExpectation pairs a top-level field name with its expected type.
type FieldExpectation struct {
	Name string
	Type CoarseType
}

// ContractExpectation is the caller-declared expected shape of a JSON
// response body. Slice order is declaration order; validation output
// preserves it.
type ContractExpectation []FieldExpectation

// ParseExpectation parses the compact "name=type,name=type" schema form used
// on the command line.
func ParseExpectation(spec string) (ContractExpectation, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var expectation ContractExpectation
	seen := map[string]bool{}
	for _, pair := range strings.Split(spec, ",") {
		name, tag, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid schema entry %q, want name=type", pair)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate schema field %q", name)
		}
		seen[name] = true

		coarse, err := ParseCoarseType(tag)
		if err != nil {
			return nil, err
		}
		expectation = append(expectation, FieldExpectation{Name: name, Type: coarse})
	}
	return expectation, nil
}

// FieldResult records the comparison of one expected field.
type FieldResult struct {
	Field    string     `json:"field"`
	Expected CoarseType `json:"expected"`
	// Actual is the observed coarse type, or "missing" when the field is
	// absent from the body.
	Actual  string `json:"actual"`
	Matched bool   `json:"matched"`
}

// ContractResult is the outcome of validating one response body.
type ContractResult struct {
	Endpoint string        `json:"endpoint,omitempty"`
	Method   string        `json:"method,omitempty"`
	Valid    bool          `json:"contract_valid"`
	Fields   []FieldResult `json:"fields"`
}

const actualMissing = "missing"

// ValidateContract checks the presence and coarse type of every expected
// top-level field in the probe's decoded body. Extra fields never fail the
// contract. A body that is not a JSON object yields Valid=false with a
// single synthetic entry. Never panics or errors; malformed input degrades
// to an invalid result.
func ValidateContract(outcome ProbeOutcome, expected ContractExpectation) ContractResult {
	result := ContractResult{Endpoint: outcome.URL, Method: outcome.Method}

	body, ok := outcome.Body.(map[string]any)
	if !ok {
		result.Fields = []FieldResult{{
			Field:    "(body)",
			Expected: TypeObject,
			Actual:   describeBody(outcome),
			Matched:  false,
		}}
		return result
	}

	result.Valid = true
	for _, exp := range expected {
		value, present := body[exp.Name]
		field := FieldResult{Field: exp.Name, Expected: exp.Type, Actual: actualMissing}
		if present {
			actual := CoarseTypeOf(value)
			field.Actual = string(actual)
			field.Matched = actual == exp.Type
		}
		if !field.Matched {
			result.Valid = false
		}
		result.Fields = append(result.Fields, field)
	}
	return result
}

func describeBody(outcome ProbeOutcome) string {
	if outcome.Body == nil {
		return "response not a JSON object"
	}
	return fmt.Sprintf("response not a JSON object (%s)", CoarseTypeOf(outcome.Body))
}

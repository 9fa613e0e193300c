package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/springprobe/internal/domain"
)

func decodeBody(t *testing.T, raw string) any {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		t.Fatalf("decoding test body: %v", err)
	}
	return value
}

func TestCoarseTypeOf(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.CoarseType
	}{
		{"string", `"hello"`, domain.TypeString},
		{"integer", `42`, domain.TypeInt},
		{"negative integer", `-7`, domain.TypeInt},
		{"float", `3.14`, domain.TypeFloat},
		{"float with zero fraction", `1.0`, domain.TypeFloat},
		{"exponent", `1e3`, domain.TypeFloat},
		{"bool", `true`, domain.TypeBool},
		{"list", `[1, 2]`, domain.TypeList},
		{"object", `{"a": 1}`, domain.TypeObject},
		{"null", `null`, domain.TypeNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.CoarseTypeOf(decodeBody(t, tt.raw)); got != tt.want {
				t.Errorf("CoarseTypeOf(%s) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateContractOrderAndMissingField(t *testing.T) {
	outcome := domain.ProbeOutcome{
		URL:    "https://svc.example.com/api/users/1",
		Method: "GET",
		Body:   decodeBody(t, `{"id": 1, "name": "Jo"}`),
	}
	expected := domain.ContractExpectation{
		{Name: "id", Type: domain.TypeInt},
		{Name: "name", Type: domain.TypeString},
		{Name: "age", Type: domain.TypeInt},
	}

	result := domain.ValidateContract(outcome, expected)

	want := domain.ContractResult{
		Endpoint: "https://svc.example.com/api/users/1",
		Method:   "GET",
		Valid:    false,
		Fields: []domain.FieldResult{
			{Field: "id", Expected: domain.TypeInt, Actual: "int", Matched: true},
			{Field: "name", Expected: domain.TypeString, Actual: "string", Matched: true},
			{Field: "age", Expected: domain.TypeInt, Actual: "missing", Matched: false},
		},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("ValidateContract() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateContractTypeMismatch(t *testing.T) {
	outcome := domain.ProbeOutcome{
		Body: decodeBody(t, `{"id": "not-a-number", "price": 9.99, "tags": [], "meta": {}, "gone": null}`),
	}
	expected := domain.ContractExpectation{
		{Name: "id", Type: domain.TypeInt},
		{Name: "price", Type: domain.TypeFloat},
		{Name: "tags", Type: domain.TypeList},
		{Name: "meta", Type: domain.TypeObject},
		{Name: "gone", Type: domain.TypeNull},
	}

	result := domain.ValidateContract(outcome, expected)

	if result.Valid {
		t.Fatal("expected invalid contract")
	}
	if len(result.Fields) != 5 {
		t.Fatalf("expected 5 field results, got %d", len(result.Fields))
	}
	if result.Fields[0].Matched {
		t.Errorf("id should not match: expected int, actual %s", result.Fields[0].Actual)
	}
	for _, field := range result.Fields[1:] {
		if !field.Matched {
			t.Errorf("field %s should match, got actual %s", field.Field, field.Actual)
		}
	}
}

func TestValidateContractEmptyExpectation(t *testing.T) {
	outcome := domain.ProbeOutcome{Body: decodeBody(t, `{"anything": "goes"}`)}

	result := domain.ValidateContract(outcome, nil)

	if !result.Valid {
		t.Error("empty expectation against an object body must be valid")
	}
	if len(result.Fields) != 0 {
		t.Errorf("expected no field results, got %d", len(result.Fields))
	}
}

func TestValidateContractExtraFieldsNeverFail(t *testing.T) {
	outcome := domain.ProbeOutcome{Body: decodeBody(t, `{"id": 1, "extra": true, "more": "stuff"}`)}
	expected := domain.ContractExpectation{{Name: "id", Type: domain.TypeInt}}

	result := domain.ValidateContract(outcome, expected)

	if !result.Valid {
		t.Error("extra unexpected fields must not fail the contract")
	}
}

func TestValidateContractNonObjectBody(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"bare list", decodeBody(t, `[1, 2, 3]`)},
		{"bare string", decodeBody(t, `"plain"`)},
		{"unparsed body", nil},
	}

	expected := domain.ContractExpectation{{Name: "id", Type: domain.TypeInt}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := domain.ValidateContract(domain.ProbeOutcome{Body: tt.body}, expected)

			if result.Valid {
				t.Fatal("non-object body must be invalid")
			}
			if len(result.Fields) != 1 {
				t.Fatalf("expected a single synthetic entry, got %d", len(result.Fields))
			}
			entry := result.Fields[0]
			if entry.Matched {
				t.Error("synthetic entry must not be matched")
			}
			if !strings.Contains(entry.Actual, "not a JSON object") {
				t.Errorf("synthetic entry should explain the failure, got %q", entry.Actual)
			}
		})
	}
}

// Non-object bodies are invalid even with nothing expected.
func TestValidateContractNonObjectBodyEmptyExpectation(t *testing.T) {
	result := domain.ValidateContract(domain.ProbeOutcome{Body: decodeBody(t, `[]`)}, nil)
	if result.Valid {
		t.Error("non-object body must be invalid regardless of expectation size")
	}
}

func TestParseExpectation(t *testing.T) {
	expectation, err := domain.ParseExpectation("id=int, name=string, score=float")
	if err != nil {
		t.Fatalf("ParseExpectation() error = %v", err)
	}

	want := domain.ContractExpectation{
		{Name: "id", Type: domain.TypeInt},
		{Name: "name", Type: domain.TypeString},
		{Name: "score", Type: domain.TypeFloat},
	}
	if diff := cmp.Diff(want, expectation); diff != "" {
		t.Errorf("ParseExpectation() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExpectationErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"missing type", "id"},
		{"empty name", "=int"},
		{"unknown type", "id=decimal"},
		{"duplicate field", "id=int,id=string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := domain.ParseExpectation(tt.spec); err == nil {
				t.Errorf("ParseExpectation(%q) expected error", tt.spec)
			}
		})
	}
}

func TestParseCoarseTypeAliases(t *testing.T) {
	tests := []struct {
		tag  string
		want domain.CoarseType
	}{
		{"dict", domain.TypeObject},
		{"array", domain.TypeList},
		{"boolean", domain.TypeBool},
		{"STR", domain.TypeString},
	}
	for _, tt := range tests {
		got, err := domain.ParseCoarseType(tt.tag)
		if err != nil {
			t.Errorf("ParseCoarseType(%q) error = %v", tt.tag, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCoarseType(%q) = %s, want %s", tt.tag, got, tt.want)
		}
	}
}

package extract

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParse_ValidJSON(t *testing.T) {
	raw := `{"policy_number": "PN-1", "vehicles": [{"year": 2019}], "injuries": [], "police_report_number": null}`

	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if r.Raw != raw {
		t.Fatalf("Raw modified: %q", r.Raw)
	}
	if r.Repaired() {
		t.Fatal("expected no recovery for valid JSON")
	}

	obj, ok := r.Object()
	if !ok {
		t.Fatalf("expected object, got %T", r.Value)
	}
	if obj["policy_number"] != "PN-1" {
		t.Fatalf("policy_number = %v", obj["policy_number"])
	}
	if obj["police_report_number"] != nil {
		t.Fatalf("expected null police_report_number, got %v", obj["police_report_number"])
	}
	year := obj["vehicles"].([]any)[0].(map[string]any)["year"]
	if year != json.Number("2019") {
		t.Fatalf("expected json.Number 2019, got %#v", year)
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		`{"a": 1.50, "b": [true, null, "x"]}`,
		`  [1, 2, 3]  `,
		`"just a string"`,
		`42`,
	}
	for _, in := range inputs {
		first, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", in, err)
		}
		second, err := Parse(string(first.JSON))
		if err != nil {
			t.Fatalf("Parse(JSON) error = %v", err)
		}
		if !reflect.DeepEqual(first.Value, second.Value) {
			t.Fatalf("values differ: %#v vs %#v", first.Value, second.Value)
		}
		if string(first.JSON) != string(second.JSON) {
			t.Fatalf("JSON differs: %s vs %s", first.JSON, second.JSON)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "Sorry, I can't help with that."},
		{"empty", ""},
		{"fenced", "```json\n{\"a\": 1}\n```"},
		{"trailing prose", `{"a": 1} hope this helps`},
		{"two values", `{"a": 1} {"b": 2}`},
		{"truncated", `{"a": [1, 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.raw)
			if r != nil {
				t.Fatalf("expected no result, got %+v", r)
			}
			var invalid *StructuredResponseInvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *StructuredResponseInvalidError, got %T: %v", err, err)
			}
			if invalid.Raw != tt.raw {
				t.Fatalf("Raw = %q, want %q", invalid.Raw, tt.raw)
			}
			if invalid.Kind() != KindStructuredResponseInvalid {
				t.Fatalf("Kind() = %q", invalid.Kind())
			}
		})
	}
}

func TestParse_Lenient(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		recovery string
		key      string
	}{
		{"valid needs nothing", `{"a": 1}`, RecoveryNone, "a"},
		{"code fence", "```json\n{\"a\": 1}\n```", RecoveryFence, "a"},
		{"surrounding prose", "Here is the claim:\n{\"a\": 1}\nLet me know!", RecoveryCandidate, "a"},
		{"trailing comma", `{"a": 1,}`, RecoveryRepair, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.raw, Lenient())
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if r.Recovery != tt.recovery {
				t.Fatalf("Recovery = %q, want %q", r.Recovery, tt.recovery)
			}
			if r.Raw != tt.raw {
				t.Fatalf("Raw modified: %q", r.Raw)
			}
			obj, ok := r.Object()
			if !ok {
				t.Fatalf("expected object, got %T", r.Value)
			}
			if _, ok := obj[tt.key]; !ok {
				t.Fatalf("missing key %q in %v", tt.key, obj)
			}
		})
	}
}

func TestParse_LenientStillRejectsProse(t *testing.T) {
	raw := "I could not find any claim details in this call."
	_, err := Parse(raw, Lenient())
	var invalid *StructuredResponseInvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *StructuredResponseInvalidError, got %T: %v", err, err)
	}
	if invalid.Raw != raw {
		t.Fatalf("Raw = %q", invalid.Raw)
	}
}

func TestResult_Decode(t *testing.T) {
	r, err := Parse(`{"policy_holder": {"name": "Ana"}}`)
	if err != nil {
		t.Fatal(err)
	}
	var claim struct {
		PolicyHolder struct {
			Name string `json:"name"`
		} `json:"policy_holder"`
	}
	if err := r.Decode(&claim); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if claim.PolicyHolder.Name != "Ana" {
		t.Fatalf("name = %q", claim.PolicyHolder.Name)
	}
}

package extract

import (
	"testing"

	"github.com/jackzampolin/promptlab/internal/prompts/claim"
)

func TestValidate(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"type": "integer"},
		},
		"required": []string{"name"},
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"conforming", `{"name": "Ana", "age": 40}`, false},
		{"missing required", `{"age": 40}`, true},
		{"wrong type", `{"name": 7}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			before := string(r.JSON)

			err = Validate(schema, r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if string(r.JSON) != before {
				t.Fatal("Validate modified the result")
			}
		})
	}
}

func TestValidate_ClaimSchema(t *testing.T) {
	raw := `{
	  "policy_holder": {"name": "Dana Reyes", "phone": "555-0100", "email": null},
	  "policy_number": "AUTO-4411",
	  "incident": {"date": "2024-03-02", "time": "08:15", "location": "Main St", "description": "Rear-ended at a light."},
	  "vehicles": [{"make": "Honda", "model": "Civic", "year": 2018, "license_plate": "ABC123", "damage": "rear bumper", "owner": "policy_holder"}],
	  "injuries": [],
	  "police_report_number": null,
	  "follow_up_actions": ["Adjuster will call within 24 hours"]
	}`
	r, err := Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(claim.Schema, r); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	partial, _ := Parse(`{"policy_number": "AUTO-4411"}`)
	if err := Validate(claim.Schema, partial); err == nil {
		t.Fatal("expected missing fields to fail validation")
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	if _, err := Compile(`{"type": 12}`); err == nil {
		t.Fatal("expected compile error")
	}
}

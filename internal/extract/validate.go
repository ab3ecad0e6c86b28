package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate checks a parsed result against a JSON Schema document.
// schema may be raw JSON bytes, a json.RawMessage or any value that
// marshals to a schema. The result is never modified.
func Validate(schema any, r *Result) error {
	if r == nil {
		return fmt.Errorf("result is required")
	}

	compiled, err := Compile(schema)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(r.JSON, &doc); err != nil {
		return fmt.Errorf("failed to decode structured JSON for validation: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("structured output does not match schema: %w", err)
	}
	return nil
}

// Compile compiles a JSON Schema document.
func Compile(schema any) (*jsonschema.Schema, error) {
	var raw []byte
	switch s := schema.(type) {
	case []byte:
		raw = s
	case json.RawMessage:
		raw = s
	case string:
		raw = []byte(s)
	default:
		b, err := json.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize schema: %w", err)
		}
		raw = b
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}

package claim

var nullableString = map[string]any{"type": []string{"string", "null"}}

// Schema is the JSON Schema of the claim object described in the system prompt.
// Validation against it is advisory.
var Schema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"policy_holder": map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"name":  nullableString,
				"phone": nullableString,
				"email": nullableString,
			},
		},
		"policy_number": nullableString,
		"incident": map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"date":        nullableString,
				"time":        nullableString,
				"location":    nullableString,
				"description": nullableString,
			},
		},
		"vehicles": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"make":          nullableString,
					"model":         nullableString,
					"year":          map[string]any{"type": []string{"string", "integer", "null"}},
					"license_plate": nullableString,
					"damage":        nullableString,
					"owner": map[string]any{
						"type": []string{"string", "null"},
						"enum": []any{"policy_holder", "third_party", nil},
					},
				},
			},
		},
		"injuries": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"police_report_number": nullableString,
		"follow_up_actions": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []string{
		"policy_holder",
		"policy_number",
		"incident",
		"vehicles",
		"injuries",
		"police_report_number",
		"follow_up_actions",
	},
}

// Package extract turns model output into structured data.
//
// Parsing is strict by default: the whole response must be one JSON value,
// and anything else is a StructuredResponseInvalidError carrying the raw
// text. Lenient recovery of fenced, wrapped or slightly broken JSON is opt-in.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Recovery steps reported in Result.Recovery.
const (
	RecoveryNone      = ""
	RecoveryFence     = "code_fence"
	RecoveryCandidate = "embedded_json"
	RecoveryRepair    = "json_repair"
)

// Result is a parsed structured response.
type Result struct {
	// Raw is the response text exactly as received.
	Raw string `json:"raw"`

	// Value is the decoded JSON. Numbers are json.Number.
	Value any `json:"value"`

	// JSON is the compacted JSON text that produced Value.
	JSON json.RawMessage `json:"json"`

	// Recovery names the lenient step that produced JSON, if any.
	Recovery string `json:"recovery,omitempty"`
}

// Repaired reports whether lenient recovery was needed.
func (r *Result) Repaired() bool {
	return r.Recovery != RecoveryNone
}

// Object returns Value as a JSON object.
func (r *Result) Object() (map[string]any, bool) {
	m, ok := r.Value.(map[string]any)
	return m, ok
}

// Decode unmarshals the parsed JSON into v.
func (r *Result) Decode(v any) error {
	return json.Unmarshal(r.JSON, v)
}

type options struct {
	lenient bool
}

// Option configures Parse.
type Option func(*options)

// Lenient enables recovery of JSON wrapped in markdown fences or prose,
// then of malformed JSON via json-repair. Only objects and arrays are
// accepted from the recovery steps.
func Lenient() Option {
	return func(o *options) { o.lenient = true }
}

// Parse decodes raw as a single JSON value.
func Parse(raw string, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	value, compact, err := decodeStrict(raw)
	if err == nil {
		return &Result{Raw: raw, Value: value, JSON: compact}, nil
	}
	if !o.lenient {
		return nil, &StructuredResponseInvalidError{Raw: raw, Err: err}
	}

	for _, c := range recoveryCandidates(raw) {
		if !looksStructured(c.text) {
			continue
		}
		if value, compact, cErr := decodeStrict(c.text); cErr == nil {
			return &Result{Raw: raw, Value: value, JSON: compact, Recovery: c.recovery}, nil
		}
	}

	repaired, rErr := jsonrepair.RepairJSON(raw)
	if rErr == nil && looksStructured(repaired) {
		if value, compact, cErr := decodeStrict(repaired); cErr == nil {
			return &Result{Raw: raw, Value: value, JSON: compact, Recovery: RecoveryRepair}, nil
		}
	}

	return nil, &StructuredResponseInvalidError{Raw: raw, Err: err}
}

func decodeStrict(text string) (any, json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, errors.New("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("unexpected data after JSON value at offset %d", dec.InputOffset())
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return nil, nil, err
	}
	return value, json.RawMessage(buf.Bytes()), nil
}

type candidate struct {
	text     string
	recovery string
}

func recoveryCandidates(raw string) []candidate {
	var out []candidate
	if stripped := stripCodeFences(raw); stripped != "" {
		out = append(out, candidate{stripped, RecoveryFence})
	}
	if embedded := embeddedJSON(raw); embedded != "" {
		out = append(out, candidate{embedded, RecoveryCandidate})
	}
	return out
}

func looksStructured(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[")
}

// stripCodeFences returns the body of a response wrapped in a markdown
// code fence, or "" if there is none.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// embeddedJSON returns the span from the first { or [ to the last matching
// closer, or "" if there is none.
func embeddedJSON(content string) string {
	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return ""
	}
	closer := "}"
	if content[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(content, closer)
	if end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

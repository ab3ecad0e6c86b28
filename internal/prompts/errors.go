package prompts

import (
	"fmt"
	"strings"
)

// LoadError is returned when a template or data file cannot be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Kind returns the error category.
func (e *LoadError) Kind() string { return "io" }

// SubstitutionError is returned when a template references placeholders that
// have no value.
type SubstitutionError struct {
	Template string
	Missing  []string
}

func (e *SubstitutionError) Error() string {
	name := e.Template
	if name == "" {
		name = "template"
	}
	return fmt.Sprintf("%s: no value for placeholder(s) %s", name, strings.Join(e.Missing, ", "))
}

// Kind returns the error category.
func (e *SubstitutionError) Kind() string { return "substitution" }

// Injection describes a value that contains the delimiter marking its own
// insertion point.
type Injection struct {
	Placeholder string    `json:"placeholder" yaml:"placeholder"`
	Delimiter   Delimiter `json:"delimiter" yaml:"delimiter"`
}

// DelimiterInjectionError is returned by a strict Builder when a value
// contains its enclosing delimiter.
type DelimiterInjectionError struct {
	Template   string
	Injections []Injection
}

func (e *DelimiterInjectionError) Error() string {
	parts := make([]string, 0, len(e.Injections))
	for _, inj := range e.Injections {
		parts = append(parts, fmt.Sprintf("%s contains %s", inj.Placeholder, inj.Delimiter))
	}
	return fmt.Sprintf("%s: delimiter injection: %s", e.Template, strings.Join(parts, "; "))
}

// Kind returns the error category.
func (e *DelimiterInjectionError) Kind() string { return "delimiter_injection" }

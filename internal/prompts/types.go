// Package prompts loads prompt templates and renders them into finished
// prompt text.
//
// Templates use {name} placeholders. A doubled brace ({{ or }}) renders as a
// single literal brace, and any brace that does not introduce an identifier
// is kept as literal text, so JSON examples inside a prompt survive unchanged.
//
// Embedded .tmpl files in the lesson packages are the defaults. A file with
// the registered name in the workspace overrides the embedded text.
//
// Resolution order for a prompt key:
//  1. Workspace file (if it exists)
//  2. Embedded default
package prompts

import (
	"sort"
	"sync"
)

// Template is prompt text with {name} placeholders.
type Template struct {
	Name string
	Text string

	once     sync.Once
	segments []segment
}

// segment is either literal text or a placeholder reference.
type segment struct {
	literal string
	name    string
	delim   *Delimiter
}

func (s segment) isPlaceholder() bool {
	return s.name != ""
}

// FromString wraps literal text as a template.
func FromString(name, text string) *Template {
	return &Template{Name: name, Text: text}
}

func (t *Template) parsed() []segment {
	t.once.Do(func() {
		t.segments = parse(t.Text)
	})
	return t.segments
}

// Placeholders returns the distinct placeholder names in the template, sorted.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, seg := range t.parsed() {
		if seg.isPlaceholder() && !seen[seg.name] {
			seen[seg.name] = true
			names = append(names, seg.name)
		}
	}
	sort.Strings(names)
	return names
}

// Delimiters returns the delimiter pair wrapping each placeholder, for
// placeholders the template bounds with a tag pair or triple quotes.
func (t *Template) Delimiters() map[string]Delimiter {
	out := make(map[string]Delimiter)
	for _, seg := range t.parsed() {
		if seg.isPlaceholder() && seg.delim != nil {
			out[seg.name] = *seg.delim
		}
	}
	return out
}

// EmbeddedPrompt is a prompt compiled into the binary from a .tmpl file.
type EmbeddedPrompt struct {
	Key         string   // Hierarchical key: templates.tone.user
	Text        string   // Default prompt text
	File        string   // Workspace-relative override path
	Description string   // Human-readable description
	Variables   []string // Placeholder names
	Hash        string   // SHA256 of Text
}

// ResolvedPrompt is the text that will actually be used for a key.
type ResolvedPrompt struct {
	Key        string   `json:"key" yaml:"key"`
	Text       string   `json:"text" yaml:"text"`
	Variables  []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	IsOverride bool     `json:"is_override" yaml:"is_override"`
	Source     string   `json:"source" yaml:"source"` // file path or "embedded"
	Hash       string   `json:"hash" yaml:"hash"`
}

// Template returns the resolved text as a template named after the key.
func (p *ResolvedPrompt) Template() *Template {
	return FromString(p.Key, p.Text)
}

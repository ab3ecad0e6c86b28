// Package rag answers questions from a small website: HTML pages are split
// on their headers, each section is embedded, and the sections closest to a
// question are formatted into the prompt.
package rag

import (
	"fmt"
	"strings"
)

// SectionSeparator joins header texts into a section path.
const SectionSeparator = "::"

// Header is one heading above a section.
type Header struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Section is a self-contained part of a page.
type Section struct {
	Page    string   `json:"page"`
	Section string   `json:"section"`
	Headers []Header `json:"headers,omitempty"`
	Content string   `json:"content"`

	Embedding  []float64 `json:"embedding,omitempty"`
	Similarity float64   `json:"similarity,omitempty"`
}

// SectionPath joins header texts with SectionSeparator.
func SectionPath(headers []Header) string {
	texts := make([]string, len(headers))
	for i, h := range headers {
		texts[i] = h.Text
	}
	return strings.Join(texts, SectionSeparator)
}

// Metadata returns the headers keyed "Header N".
func (s Section) Metadata() map[string]string {
	m := make(map[string]string, len(s.Headers))
	for _, h := range s.Headers {
		m[fmt.Sprintf("Header %d", h.Level)] = h.Text
	}
	return m
}

// EmbeddingText is the text embedded for a section: its path, a newline,
// then its content.
func (s Section) EmbeddingText() string {
	return s.Section + "\n" + s.Content
}

// FormatSections renders sections as the <section> blocks of the answer prompt.
func FormatSections(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString("<section>\n")
		fmt.Fprintf(&b, "Page: %s\n", s.Page)
		fmt.Fprintf(&b, "Section: %s\n", s.Section)
		fmt.Fprintf(&b, "Content:\n%s\n", s.Content)
		b.WriteString("</section>\n")
	}
	return b.String()
}

// Package console renders command results for the terminal.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format defines the output format for structured command results.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultFormat is used when --output is not given.
const DefaultFormat = FormatYAML

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultFormat, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (want yaml or json)", s)
	}
}

// Printer writes prompts, responses and structured values to one writer.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a printer writing structured values in format.
func NewPrinter(w io.Writer, format Format) *Printer {
	if format == "" {
		format = DefaultFormat
	}
	return &Printer{w: w, format: format}
}

// Render writes data in the printer's format.
func (p *Printer) Render(data any) error {
	return RenderTo(p.w, p.format, data)
}

// Section writes a titled block of free text, e.g. a prompt or a reply.
func (p *Printer) Section(title, text string) {
	fmt.Fprintf(p.w, "%s:\n%s\n\n", title, strings.TrimRight(text, "\n"))
}

// Line writes one formatted line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Titled writes a title line followed by data in the printer's format.
func (p *Printer) Titled(title string, data any) error {
	fmt.Fprintf(p.w, "%s:\n", title)
	if err := p.Render(data); err != nil {
		return err
	}
	fmt.Fprintln(p.w)
	return nil
}

// RenderTo writes data to the given writer in the specified format.
func RenderTo(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

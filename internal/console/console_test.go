package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderTo(t *testing.T) {
	data := map[string]any{"name": "Ada", "age": 36}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RenderTo(&buf, FormatJSON, data); err != nil {
			t.Fatalf("RenderTo() error = %v", err)
		}
		if !strings.Contains(buf.String(), `"name": "Ada"`) {
			t.Fatalf("unexpected json output: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RenderTo(&buf, FormatYAML, data); err != nil {
			t.Fatalf("RenderTo() error = %v", err)
		}
		if !strings.Contains(buf.String(), "name: Ada") {
			t.Fatalf("unexpected yaml output: %s", buf.String())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := RenderTo(&bytes.Buffer{}, Format("xml"), data); err == nil {
			t.Fatal("expected error for unknown format")
		}
	})
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "")

	p.Section("Prompt", "Tell me a joke.\n")
	if err := p.Titled("Response", map[string]string{"content": "ha"}); err != nil {
		t.Fatal(err)
	}

	want := "Prompt:\nTell me a joke.\n\nResponse:\ncontent: ha\n\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  pirate \n\nlast"), &out)

	got, err := p.Ask("Tone: ")
	if err != nil || got != "pirate" {
		t.Fatalf("Ask() = %q, %v", got, err)
	}
	if out.String() != "Tone: " {
		t.Fatalf("question not written: %q", out.String())
	}

	got, err = p.Ask("Tone: ")
	if err != nil || got != "" {
		t.Fatalf("Ask() on a blank line = %q, %v", got, err)
	}

	got, err = p.Ask("")
	if err != nil || got != "last" {
		t.Fatalf("Ask() without newline = %q, %v", got, err)
	}

	if _, err := p.Ask(""); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

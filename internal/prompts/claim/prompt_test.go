package claim

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/promptlab/internal/prompts"
)

func TestUserPrompt(t *testing.T) {
	got, err := UserPrompt("Agent: How can I help?\nCaller: I was rear-ended.")
	if err != nil {
		t.Fatalf("UserPrompt() error = %v", err)
	}
	if !strings.Contains(got, "<transcript>\nAgent: How can I help?\nCaller: I was rear-ended.\n</transcript>") {
		t.Fatalf("transcript not enclosed in tags: %q", got)
	}

	spans := prompts.Tag("transcript").Extract(got)
	if len(spans) != 1 {
		t.Fatalf("expected one transcript span, got %d", len(spans))
	}
}

func TestUserTemplate_Delimiters(t *testing.T) {
	d := UserTemplate().Delimiters()
	if d[VarTranscriptText] != prompts.Tag("transcript") {
		t.Fatalf("transcript delimiter = %+v", d[VarTranscriptText])
	}
}

func TestSchema_RequiredFieldsDescribed(t *testing.T) {
	props := Schema["properties"].(map[string]any)
	for _, field := range Schema["required"].([]string) {
		if _, ok := props[field]; !ok {
			t.Errorf("required field %q has no property", field)
		}
		if !strings.Contains(SystemPrompt(), `"`+field+`"`) {
			t.Errorf("system prompt does not describe %q", field)
		}
	}
}

func TestRegisterPrompts(t *testing.T) {
	r := prompts.NewResolver(t.TempDir(), nil)
	RegisterPrompts(r)

	p, err := r.Resolve(UserPromptKey)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(p.Variables) != 1 || p.Variables[0] != VarTranscriptText {
		t.Fatalf("Variables = %v", p.Variables)
	}

	e, ok := r.GetEmbedded(SystemPromptKey)
	if !ok {
		t.Fatal("system prompt not registered")
	}
	if filepath.Base(e.File) != "extract_claim_system_prompt.txt" {
		t.Fatalf("File = %s", e.File)
	}
}

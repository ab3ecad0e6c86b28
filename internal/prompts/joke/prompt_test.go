package joke

import (
	"testing"

	"github.com/jackzampolin/promptlab/internal/prompts"
)

func TestRegisterPrompts(t *testing.T) {
	r := prompts.NewResolver("", nil)
	RegisterPrompts(r)

	p, err := r.Resolve(UserPromptKey)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Text != "Tell me a joke." {
		t.Fatalf("Text = %q", p.Text)
	}
	if len(p.Variables) != 0 {
		t.Fatalf("expected no variables, got %v", p.Variables)
	}
}

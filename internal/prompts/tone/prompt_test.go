package tone

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/promptlab/internal/prompts"
	"github.com/jackzampolin/promptlab/internal/workspace"
)

func TestUserPrompt(t *testing.T) {
	got, err := UserPrompt("pirate", "Hello, see you soon.")
	if err != nil {
		t.Fatalf("UserPrompt() error = %v", err)
	}
	if !strings.Contains(got, "tone is: pirate") {
		t.Fatalf("tone not substituted: %q", got)
	}
	spans := prompts.TripleQuote.Extract(got)
	if len(spans) != 1 || strings.TrimSpace(spans[0]) != "Hello, see you soon." {
		t.Fatalf("message span = %q", spans)
	}
}

func TestUserPrompt_MissingTone(t *testing.T) {
	_, err := prompts.Build(UserTemplate(), map[string]string{VarMessageText: "hi"})
	var subErr *prompts.SubstitutionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected *SubstitutionError, got %v", err)
	}
	if len(subErr.Missing) != 1 || subErr.Missing[0] != VarRequestedTone {
		t.Fatalf("Missing = %v", subErr.Missing)
	}
}

func TestRegisterPrompts_WorkspaceOverride(t *testing.T) {
	root := t.TempDir()
	dir, err := workspace.New(root)
	if err != nil {
		t.Fatal(err)
	}
	path := dir.PromptPath(workspace.LessonTemplates, "tone_user_prompt.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("Make it {requested_tone}: <m>{message_text}</m>"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := prompts.NewResolver(root, nil)
	RegisterPrompts(r)

	p, err := r.Resolve(UserPromptKey)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !p.IsOverride || p.Source != path {
		t.Fatalf("expected override from %s, got %+v", path, p)
	}

	got, err := prompts.Build(p.Template(), Values("formal", "yo"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got != "Make it formal: <m>yo</m>" {
		t.Fatalf("Build() = %q", got)
	}

	sys, err := r.Resolve(SystemPromptKey)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if sys.IsOverride || sys.Text != SystemPrompt() {
		t.Fatalf("expected embedded system prompt, got %+v", sys)
	}
}

package prompts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	got := ExtractVariables("Rewrite in {tone} the message {draft}. Again: {tone}. {{literal}}")
	want := []string{"draft", "tone"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractVariables() = %v, want %v", got, want)
	}

	if got := ExtractVariables("no placeholders {} { x }"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTemplate_Delimiters(t *testing.T) {
	tmpl := FromString("t", "<tone>{tone}</tone>\n\"\"\"\n{body}\n\"\"\"\n<a>{mismatch}</b> {bare}")

	got := tmpl.Delimiters()
	want := map[string]Delimiter{
		"tone": Tag("tone"),
		"body": TripleQuote,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Delimiters() = %+v, want %+v", got, want)
	}
}

func TestDelimiter_Extract(t *testing.T) {
	text := `a """one""" b """two""" c """unterminated`
	got := TripleQuote.Extract(text)
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("Extract() = %q", got)
	}

	sections := Tag("section").Extract("<section>\nx\n</section>\n<section>y</section>\n")
	if !reflect.DeepEqual(sections, []string{"\nx\n", "y"}) {
		t.Fatalf("Extract() = %q", sections)
	}

	if got := (Delimiter{}).Extract("anything"); got != nil {
		t.Fatalf("expected nil for empty delimiter, got %q", got)
	}
}

func TestDelimiter_WrapContains(t *testing.T) {
	d := Tag("message")
	if got := d.Wrap("hi"); got != "<message>hi</message>" {
		t.Fatalf("Wrap() = %q", got)
	}
	if !d.Contains("x </message> y") {
		t.Fatal("expected Contains to find closing marker")
	}
	if d.Contains("plain text") {
		t.Fatal("unexpected marker in plain text")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone_user_prompt.txt")
	text := "Use a {requested_tone} tone:\n\"\"\"{message_text}\"\"\"\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	tmpl, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if tmpl.Text != text {
		t.Fatalf("template text modified: %q", tmpl.Text)
	}
	if tmpl.Name != "tone_user_prompt" {
		t.Fatalf("Name = %q", tmpl.Name)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T: %v", err, err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if loadErr.Kind() != "io" {
		t.Fatalf("Kind() = %q", loadErr.Kind())
	}
}

func TestResolver(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root, nil)
	r.Register(EmbeddedPrompt{
		Key:  "templates.tone.user",
		Text: "embedded {requested_tone}",
		File: filepath.Join("templates", "prompts", "tone_user_prompt.txt"),
	})
	r.Register(EmbeddedPrompt{
		Key:  "system_messages.joke.user",
		Text: "Tell me a joke.",
	})

	t.Run("embedded default", func(t *testing.T) {
		p, err := r.Resolve("templates.tone.user")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if p.IsOverride || p.Source != "embedded" {
			t.Fatalf("expected embedded prompt, got %+v", p)
		}
		if !reflect.DeepEqual(p.Variables, []string{"requested_tone"}) {
			t.Fatalf("Variables = %v", p.Variables)
		}
		if p.Hash != HashText("embedded {requested_tone}") {
			t.Fatalf("unexpected hash %s", p.Hash)
		}
	})

	t.Run("workspace override", func(t *testing.T) {
		dir := filepath.Join(root, "templates", "prompts")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "tone_user_prompt.txt"), []byte("override {message_text}"), 0o644); err != nil {
			t.Fatal(err)
		}

		p, err := r.Resolve("templates.tone.user")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !p.IsOverride || p.Text != "override {message_text}" {
			t.Fatalf("expected override, got %+v", p)
		}
		if p.Template().Placeholders()[0] != "message_text" {
			t.Fatalf("unexpected placeholders %v", p.Template().Placeholders())
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		if _, err := r.Resolve("nope"); err == nil {
			t.Fatal("expected error for unknown key")
		}
	})

	t.Run("all embedded sorted", func(t *testing.T) {
		all := r.AllEmbedded()
		if len(all) != 2 || all[0].Key != "system_messages.joke.user" {
			t.Fatalf("AllEmbedded() = %+v", all)
		}
	})
}

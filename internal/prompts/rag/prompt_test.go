package rag

import (
	"strings"
	"testing"

	"github.com/jackzampolin/promptlab/internal/prompts"
)

func TestUserTemplate(t *testing.T) {
	extracts := "<section>\nPage: home\nSection: Welcome\nContent:\nOpen daily.\n</section>\n"
	got, err := prompts.Build(UserTemplate(), Values(extracts, "When are you open?"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.HasSuffix(got, extracts+"\nQuestion: When are you open?\n") {
		t.Fatalf("unexpected prompt %q", got)
	}
	if spans := prompts.Tag("section").Extract(got); len(spans) != 1 {
		t.Fatalf("expected one section, got %q", spans)
	}
}

func TestUserTemplate_Variables(t *testing.T) {
	got := UserTemplate().Placeholders()
	if len(got) != 2 || got[0] != VarQuestion || got[1] != VarWebExtracts {
		t.Fatalf("Placeholders() = %v", got)
	}
}

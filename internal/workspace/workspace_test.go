package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-promptlab")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-promptlab" {
			t.Errorf("expected path /tmp/test-promptlab, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses working directory", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wd, _ := os.Getwd()
		if dir.Path() != wd {
			t.Errorf("expected path %s, got %s", wd, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-promptlab")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"EnvPath", dir.EnvPath(), "/tmp/test-promptlab/.env"},
		{"ConfigPath", dir.ConfigPath(), "/tmp/test-promptlab/config.yaml"},
		{"PromptPath", dir.PromptPath(LessonTemplates, "tone_user_prompt.txt"), "/tmp/test-promptlab/02_templates_delimiters/prompts/tone_user_prompt.txt"},
		{"DataPath", dir.DataPath(LessonExtraction, "call_transcript_1.txt"), "/tmp/test-promptlab/03_data_extraction/data/call_transcript_1.txt"},
		{"SourceDir", dir.SourceDir(), "/tmp/test-promptlab/04_rag/data/source"},
		{"HomePagePath", dir.HomePagePath(), "/tmp/test-promptlab/04_rag/data/source/ka-pow.html"},
		{"VectorPath", dir.VectorPath(), "/tmp/test-promptlab/04_rag/data/vectors/ka-pow_vectors.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tt.got)
			}
		})
	}
}

func TestDir_EnsureVectorDir(t *testing.T) {
	dir, _ := New(t.TempDir())
	if err := dir.EnsureVectorDir(); err != nil {
		t.Fatalf("EnsureVectorDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dir.VectorPath())); err != nil {
		t.Fatalf("vector dir missing: %v", err)
	}
	if !dir.Exists() {
		t.Fatal("expected workspace to exist")
	}
}

// Package workspace locates the lesson files promptlab reads and writes.
//
// A workspace mirrors the course layout:
//
//	<root>/.env
//	<root>/config.yaml (or config.json)
//	<root>/<lesson>/prompts/*.txt
//	<root>/<lesson>/data/...
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Lesson directory names.
const (
	LessonSystemMessages = "01_system_messages"
	LessonTemplates      = "02_templates_delimiters"
	LessonExtraction     = "03_data_extraction"
	LessonRAG            = "04_rag"
)

const (
	// EnvFileName holds the API credential and is kept out of version control.
	EnvFileName = ".env"

	// ConfigName is the config file name without extension.
	ConfigName = "config"

	// ConfigFileName is the file written by "config init".
	ConfigFileName = "config.yaml"

	PromptsDirName = "prompts"
	DataDirName    = "data"

	// VectorFileName is the CSV written by "rag vectorize".
	VectorFileName = "ka-pow_vectors.csv"

	// HomePageName is the page "rag split" reads by default.
	HomePageName = "ka-pow.html"
)

// Dir is a workspace root.
type Dir struct {
	path string
}

// New creates a Dir rooted at path.
// If path is empty, the current working directory is used.
func New(path string) (*Dir, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace path: %w", err)
	}
	return &Dir{path: abs}, nil
}

// Path returns the workspace root.
func (d *Dir) Path() string {
	return d.path
}

// EnvPath returns the path to the .env credential file.
func (d *Dir) EnvPath() string {
	return filepath.Join(d.path, EnvFileName)
}

// ConfigPath returns the path "config init" writes to.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// LessonPath returns the directory of a lesson.
func (d *Dir) LessonPath(lesson string) string {
	return filepath.Join(d.path, lesson)
}

// PromptPath returns the path to a prompt file of a lesson.
func (d *Dir) PromptPath(lesson, name string) string {
	return filepath.Join(d.path, PromptFile(lesson, name))
}

// DataPath returns the path to a data file of a lesson.
func (d *Dir) DataPath(lesson, name string) string {
	return filepath.Join(d.LessonPath(lesson), DataDirName, name)
}

// SourceDir returns the directory holding the RAG lesson's HTML pages.
func (d *Dir) SourceDir() string {
	return filepath.Join(d.LessonPath(LessonRAG), DataDirName, "source")
}

// HomePagePath returns the RAG lesson's home page.
func (d *Dir) HomePagePath() string {
	return filepath.Join(d.SourceDir(), HomePageName)
}

// VectorDir returns the directory holding the RAG vector file.
func (d *Dir) VectorDir() string {
	return filepath.Join(d.LessonPath(LessonRAG), DataDirName, "vectors")
}

// VectorPath returns the default vector CSV path.
func (d *Dir) VectorPath() string {
	return filepath.Join(d.VectorDir(), VectorFileName)
}

// EnsureVectorDir creates the vector directory if it doesn't exist.
func (d *Dir) EnsureVectorDir() error {
	if err := os.MkdirAll(d.VectorDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create vector directory: %w", err)
	}
	return nil
}

// Exists returns true if the workspace root exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// PromptFile returns the workspace-relative path of a lesson prompt file.
func PromptFile(lesson, name string) string {
	return filepath.Join(lesson, PromptsDirName, name)
}

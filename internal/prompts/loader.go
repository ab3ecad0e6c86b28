package prompts

import (
	"os"
	"path/filepath"
	"strings"
)

// ReadFile returns the whole file as text.
// Missing or unreadable files yield a *LoadError wrapping the os error,
// so errors.Is(err, fs.ErrNotExist) still works.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}
	return string(data), nil
}

// LoadFile reads a template from disk. The text is returned unmodified and
// placeholder syntax is not checked until the template is built.
func LoadFile(path string) (*Template, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return FromString(name, text), nil
}

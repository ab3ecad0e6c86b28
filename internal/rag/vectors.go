package rag

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// VectorColumns is the header row of a vector file.
var VectorColumns = []string{"Page", "Section", "Content", "Embedding"}

// VectorWriter streams sections to a vector CSV file.
type VectorWriter struct {
	w     *csv.Writer
	wrote bool
}

// NewVectorWriter creates a writer. The header row is written with the
// first section.
func NewVectorWriter(w io.Writer) *VectorWriter {
	return &VectorWriter{w: csv.NewWriter(w)}
}

// Write appends one section. Sections without an embedding are rejected.
func (vw *VectorWriter) Write(s Section) error {
	if len(s.Embedding) == 0 {
		return fmt.Errorf("section %q of %s has no embedding", s.Section, s.Page)
	}
	if !vw.wrote {
		if err := vw.w.Write(VectorColumns); err != nil {
			return err
		}
		vw.wrote = true
	}
	if err := vw.w.Write([]string{s.Page, s.Section, s.Content, FormatVector(s.Embedding)}); err != nil {
		return err
	}
	vw.w.Flush()
	return vw.w.Error()
}

// Close writes the header row if nothing else was written and flushes.
func (vw *VectorWriter) Close() error {
	if !vw.wrote {
		if err := vw.w.Write(VectorColumns); err != nil {
			return err
		}
		vw.wrote = true
	}
	vw.w.Flush()
	return vw.w.Error()
}

// SaveVectors writes sections to path, replacing any existing file only
// once every section was written.
func SaveVectors(path string, sections []Section) error {
	return replaceVectorFile(path, func(vw *VectorWriter) error {
		for _, s := range sections {
			if err := vw.Write(s); err != nil {
				return err
			}
		}
		return vw.Close()
	})
}

// replaceVectorFile runs write against a temporary file in path's directory
// and renames it over path when write succeeds. On failure the temporary
// file is removed and path is untouched.
func replaceVectorFile(path string, write func(*VectorWriter) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &FileError{Op: "create vector file", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(NewVectorWriter(tmp)); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return &FileError{Op: "write vector file", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &FileError{Op: "replace vector file", Path: path, Err: err}
	}
	return nil
}

// LoadVectors reads a vector file written by VectorWriter.
func LoadVectors(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open vector file", Path: path, Err: err}
	}
	defer f.Close()
	return ReadVectors(f)
}

// ReadVectors parses vector CSV. Columns are located by name.
func ReadVectors(r io.Reader) ([]Section, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vector header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range VectorColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("vector file is missing column %q", name)
		}
	}

	var sections []Section
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read vector row: %w", err)
		}
		vec, err := ParseVector(rec[col["Embedding"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sections = append(sections, Section{
			Page:      rec[col["Page"]],
			Section:   rec[col["Section"]],
			Content:   rec[col["Content"]],
			Embedding: vec,
		})
	}
	return sections, nil
}

// FormatVector renders a vector as a bracketed, comma separated list.
func FormatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseVector parses the output of FormatVector.
func ParseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("embedding is not a bracketed list")
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	if s == "" {
		return nil, fmt.Errorf("embedding is empty")
	}
	parts := strings.Split(s, ",")
	v := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("embedding element %d: %w", i, err)
		}
		v[i] = f
	}
	return v, nil
}

// AbbreviateVector renders the first n elements, "...", and the last one.
func AbbreviateVector(v []float64, n int) string {
	if n < 0 {
		n = 0
	}
	if len(v) <= n+1 {
		return FormatVector(v)
	}
	if n == 0 {
		return "[..., " + strconv.FormatFloat(v[len(v)-1], 'g', -1, 64) + "]"
	}
	head := FormatVector(v[:n])
	return head[:len(head)-1] + ", ..., " + strconv.FormatFloat(v[len(v)-1], 'g', -1, 64) + "]"
}

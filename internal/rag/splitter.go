package rag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultHeaderLevels splits on h1 through h4.
const DefaultHeaderLevels = 4

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "li": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
	"br": true, "hr": true,
}

var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "head": true,
}

// HeaderSplitter splits HTML into sections at h1..hN headings. Header text
// goes to the section's headers, never into its content.
type HeaderSplitter struct {
	levels int
}

// NewHeaderSplitter creates a splitter for h1 through h<levels>.
// Out of range values use DefaultHeaderLevels.
func NewHeaderSplitter(levels int) *HeaderSplitter {
	if levels < 1 || levels > 6 {
		levels = DefaultHeaderLevels
	}
	return &HeaderSplitter{levels: levels}
}

// SplitFile splits one HTML file. Sections are named after the file's base name.
func (s *HeaderSplitter) SplitFile(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open page", Path: path, Err: err}
	}
	defer f.Close()
	return s.Split(filepath.Base(path), f)
}

// Split splits an HTML document read from r.
func (s *HeaderSplitter) Split(page string, r io.Reader) ([]Section, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML for %s: %w", page, err)
	}

	w := &walker{
		page:    page,
		levels:  s.levels,
		stack:   make([]string, s.levels),
		headers: headerSelector(s.levels),
	}
	w.walk(doc.Find("body"))
	w.flush()
	return w.sections, nil
}

func headerSelector(levels int) string {
	tags := make([]string, levels)
	for i := range tags {
		tags[i] = fmt.Sprintf("h%d", i+1)
	}
	return strings.Join(tags, ",")
}

type walker struct {
	page     string
	levels   int
	headers  string
	stack    []string
	inline   strings.Builder // current run of text and inline elements
	pieces   []string
	sections []Section
}

func (w *walker) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			w.inline.WriteString(child.Text())
		case skipTags[name]:
		case w.headerLevel(name) > 0:
			w.flush()
			level := w.headerLevel(name)
			w.stack[level-1] = collapse(child.Text())
			for i := level; i < len(w.stack); i++ {
				w.stack[i] = ""
			}
		case strings.HasPrefix(name, "#"):
		case child.Find(w.headers).Length() == 0 && !hasBlockChild(child):
			if !blockTags[name] {
				w.inline.WriteString(child.Text())
				return
			}
			w.endInline()
			w.add(child.Text())
		default:
			w.endInline()
			w.walk(child)
			w.endInline()
		}
	})
}

func (w *walker) headerLevel(name string) int {
	if len(name) != 2 || name[0] != 'h' || name[1] < '1' || name[1] > '9' {
		return 0
	}
	level := int(name[1] - '0')
	if level > w.levels {
		return 0
	}
	return level
}

func (w *walker) add(text string) {
	if t := collapse(text); t != "" {
		w.pieces = append(w.pieces, t)
	}
}

// endInline closes the current inline run as one piece.
func (w *walker) endInline() {
	w.add(w.inline.String())
	w.inline.Reset()
}

func (w *walker) flush() {
	w.endInline()
	if len(w.pieces) == 0 {
		return
	}
	var headers []Header
	for i, text := range w.stack {
		if text != "" {
			headers = append(headers, Header{Level: i + 1, Text: text})
		}
	}
	w.sections = append(w.sections, Section{
		Page:    w.page,
		Section: SectionPath(headers),
		Headers: headers,
		Content: strings.Join(w.pieces, "\n"),
	})
	w.pieces = nil
}

func hasBlockChild(sel *goquery.Selection) bool {
	found := false
	sel.Find("*").EachWithBreak(func(_ int, d *goquery.Selection) bool {
		if blockTags[goquery.NodeName(d)] {
			found = true
			return false
		}
		return true
	})
	return found
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

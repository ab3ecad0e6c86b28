package prompts

import "strings"

// Delimiter is a fixed marker pair that bounds inserted content in a prompt.
//
// Content is inserted between the markers verbatim. A value that itself
// contains the closing marker makes the boundary ambiguous to the model and
// to Extract; Builder reports such values as injections.
type Delimiter struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
}

// TripleQuote bounds content with """ on both sides.
var TripleQuote = Delimiter{Open: `"""`, Close: `"""`}

// Tag returns the <name></name> delimiter pair.
func Tag(name string) Delimiter {
	return Delimiter{Open: "<" + name + ">", Close: "</" + name + ">"}
}

// Wrap returns s between the markers.
func (d Delimiter) Wrap(s string) string {
	return d.Open + s + d.Close
}

// Contains reports whether s contains either marker.
func (d Delimiter) Contains(s string) bool {
	if d.Open != "" && strings.Contains(s, d.Open) {
		return true
	}
	return d.Close != "" && strings.Contains(s, d.Close)
}

// Extract returns the text between each marker pair in order.
// Spans are matched non-greedily: each span ends at the first closing marker
// after its opening marker. An unterminated trailing span is ignored.
func (d Delimiter) Extract(text string) []string {
	if d.Open == "" || d.Close == "" {
		return nil
	}
	var spans []string
	for {
		start := strings.Index(text, d.Open)
		if start < 0 {
			return spans
		}
		text = text[start+len(d.Open):]
		end := strings.Index(text, d.Close)
		if end < 0 {
			return spans
		}
		spans = append(spans, text[:end])
		text = text[end+len(d.Close):]
	}
}

func (d Delimiter) String() string {
	return d.Open + "..." + d.Close
}

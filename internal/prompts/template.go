package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// identPattern matches a placeholder name.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ExtractVariables returns the placeholder names referenced by a template string.
// For example, "Rewrite in {tone} the message {draft}" returns ["draft", "tone"].
func ExtractVariables(text string) []string {
	return FromString("", text).Placeholders()
}

// HashText returns a SHA256 hash of the text for change detection.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// parse splits template text into literal and placeholder segments.
// Escaped braces are unescaped in the literal segments.
func parse(text string) []segment {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "{{"):
			lit.WriteByte('{')
			i += 2
		case strings.HasPrefix(text[i:], "}}"):
			lit.WriteByte('}')
			i += 2
		case text[i] == '{':
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 || !identPattern.MatchString(text[i+1:i+1+end]) {
				lit.WriteByte('{')
				i++
				continue
			}
			flush()
			segs = append(segs, segment{name: text[i+1 : i+1+end]})
			i += end + 2
		default:
			lit.WriteByte(text[i])
			i++
		}
	}
	flush()

	for i := range segs {
		if !segs[i].isPlaceholder() {
			continue
		}
		var before, after string
		if i > 0 && !segs[i-1].isPlaceholder() {
			before = segs[i-1].literal
		}
		if i+1 < len(segs) && !segs[i+1].isPlaceholder() {
			after = segs[i+1].literal
		}
		segs[i].delim = enclosingDelimiter(before, after)
	}
	return segs
}

var (
	openTagSuffix = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9_-]*)>\s*$`)
	closeTagStart = regexp.MustCompile(`^\s*</([A-Za-z][A-Za-z0-9_-]*)>`)
)

// enclosingDelimiter reports the marker pair surrounding a placeholder,
// ignoring whitespace between marker and placeholder.
func enclosingDelimiter(before, after string) *Delimiter {
	if strings.HasSuffix(strings.TrimRight(before, " \t\r\n"), TripleQuote.Open) &&
		strings.HasPrefix(strings.TrimLeft(after, " \t\r\n"), TripleQuote.Close) {
		d := TripleQuote
		return &d
	}

	open := openTagSuffix.FindStringSubmatch(before)
	closing := closeTagStart.FindStringSubmatch(after)
	if open != nil && closing != nil && open[1] == closing[1] {
		d := Tag(open[1])
		return &d
	}
	return nil
}

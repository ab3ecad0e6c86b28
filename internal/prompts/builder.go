package prompts

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Builder renders templates into finished prompt text.
type Builder struct {
	logger *slog.Logger
	strict bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for delimiter injection warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithStrictDelimiters makes Build fail when a value contains the delimiter
// that bounds it. Without it such values are inserted verbatim and logged.
func WithStrictDelimiters() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// NewBuilder creates a new Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build substitutes values into the template with a default Builder.
func Build(t *Template, values map[string]string) (string, error) {
	return NewBuilder().Build(t, values)
}

// Build substitutes values into the template.
//
// Every placeholder must have a value, otherwise a *SubstitutionError naming
// all missing placeholders is returned with empty output. Extra values are
// ignored. Values are inserted literally; delimiter markers inside a value
// are not escaped.
func (b *Builder) Build(t *Template, values map[string]string) (string, error) {
	if t == nil {
		return "", fmt.Errorf("template is required")
	}

	if missing := missingValues(t, values); len(missing) > 0 {
		return "", &SubstitutionError{Template: t.Name, Missing: missing}
	}

	if injections := Injections(t, values); len(injections) > 0 {
		if b.strict {
			return "", &DelimiterInjectionError{Template: t.Name, Injections: injections}
		}
		if b.logger != nil {
			for _, inj := range injections {
				b.logger.Warn("value contains its delimiter; inserted verbatim",
					"template", t.Name,
					"placeholder", inj.Placeholder,
					"delimiter", inj.Delimiter.String())
			}
		}
	}

	var out strings.Builder
	out.Grow(len(t.Text))
	for _, seg := range t.parsed() {
		if seg.isPlaceholder() {
			out.WriteString(values[seg.name])
		} else {
			out.WriteString(seg.literal)
		}
	}
	return out.String(), nil
}

// Injections reports values that contain the delimiter bounding their
// placeholder in the template.
func Injections(t *Template, values map[string]string) []Injection {
	delims := t.Delimiters()
	names := make([]string, 0, len(delims))
	for name := range delims {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Injection
	for _, name := range names {
		v, ok := values[name]
		if ok && delims[name].Contains(v) {
			out = append(out, Injection{Placeholder: name, Delimiter: delims[name]})
		}
	}
	return out
}

func missingValues(t *Template, values map[string]string) []string {
	var missing []string
	for _, name := range t.Placeholders() {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// ExtractValues recovers the inserted values from text rendered by t.
//
// The rendered text must contain the template's literal text in order.
// When a value contains the literal text that follows its placeholder,
// the span ends early and the recovered value differs from the original;
// a repeated placeholder then reports a mismatch.
func (t *Template) ExtractValues(rendered string) (map[string]string, error) {
	segs := t.parsed()
	values := make(map[string]string)
	pos := 0

	for i, seg := range segs {
		if !seg.isPlaceholder() {
			if !strings.HasPrefix(rendered[pos:], seg.literal) {
				return nil, fmt.Errorf("rendered text does not match template %q at offset %d", t.Name, pos)
			}
			pos += len(seg.literal)
			continue
		}

		var value string
		switch {
		case i+1 == len(segs):
			value = rendered[pos:]
		case segs[i+1].isPlaceholder():
			return nil, fmt.Errorf("placeholders %s and %s are adjacent; values cannot be separated", seg.name, segs[i+1].name)
		default:
			end := strings.Index(rendered[pos:], segs[i+1].literal)
			if end < 0 {
				return nil, fmt.Errorf("rendered text is missing the text after placeholder %s", seg.name)
			}
			value = rendered[pos : pos+end]
		}

		if prev, ok := values[seg.name]; ok && prev != value {
			return nil, fmt.Errorf("placeholder %s has inconsistent values", seg.name)
		}
		values[seg.name] = value
		pos += len(value)
	}

	if pos != len(rendered) {
		return nil, fmt.Errorf("rendered text has %d trailing bytes not in template %q", len(rendered)-pos, t.Name)
	}
	return values, nil
}

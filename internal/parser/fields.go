package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind declares how a captured value is coerced.
type Kind int

const (
	KindString Kind = iota
	KindFloat
	KindInt
	KindBool
)

// Field is one declarative extraction rule: a label pattern with a single
// capture group plus the target type. Sixty-odd fields across the sections
// share the one generic extraction path below instead of per-field branching.
type Field struct {
	Name    string
	Pattern *regexp.Regexp
	Kind    Kind
}

// field is a convenience constructor; every pattern matches case-insensitively.
func field(name, pattern string, kind Kind) Field {
	return Field{Name: name, Pattern: regexp.MustCompile(`(?i)` + pattern), Kind: kind}
}

// Extract applies the field's pattern to section text. A pattern miss yields
// nil; a type-coercion miss yields the raw matched string.
func (f Field) Extract(section string) any {
	m := f.Pattern.FindStringSubmatch(section)
	if m == nil {
		return nil
	}
	return coerce(f.Kind, strings.TrimSpace(m[1]))
}

// extractAll runs every field of a table against the section text.
func extractAll(section string, fields []Field) map[string]any {
	vals := make(map[string]any, len(fields))
	for _, f := range fields {
		vals[f.Name] = f.Extract(section)
	}
	return vals
}

func coerce(kind Kind, raw string) any {
	switch kind {
	case KindFloat:
		if v, ok := parseFloat(raw); ok {
			return v
		}
		return raw
	case KindInt:
		if v, ok := parseInt(raw); ok {
			return v
		}
		return raw
	case KindBool:
		// only the literals true/false qualify; patterns enforce this too
		switch strings.ToLower(raw) {
		case "true":
			return true
		case "false":
			return false
		}
		return raw
	default:
		return raw
	}
}

// parseFloat is the typed replacement for exception-driven best-effort
// parsing: callers fall back to the raw string when ok is false.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

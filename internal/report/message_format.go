package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scan-io-git/sarif-reporter/internal/bugs"
)

// Placeholder is one {N} or {N.key} reference in a message template: the
// annotation index and the format key used to render it.
type Placeholder struct {
	Index int
	Key   string
}

// parseMessageFormat rewrites every placeholder of template to its
// sequential position, so "{1.name} and {0} then {1}" becomes
// "{0} and {1} then {2}", and returns the placeholders in order.
func parseMessageFormat(template string) (string, []Placeholder, error) {
	var (
		b            strings.Builder
		placeholders []Placeholder
	)
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", nil, fmt.Errorf("unmatched '{' in message template %q", template)
		}
		end += open

		p, err := parsePlaceholder(rest[open+1 : end])
		if err != nil {
			return "", nil, fmt.Errorf("message template %q: %w", template, err)
		}
		b.WriteString(rest[:open])
		fmt.Fprintf(&b, "{%d}", len(placeholders))
		placeholders = append(placeholders, p)
		rest = rest[end+1:]
	}
	return b.String(), placeholders, nil
}

func parsePlaceholder(s string) (Placeholder, error) {
	index, key, _ := strings.Cut(s, ".")
	n, err := strconv.Atoi(index)
	if err != nil {
		return Placeholder{}, fmt.Errorf("invalid placeholder index %q", index)
	}
	return Placeholder{Index: n, Key: key}, nil
}

// formatArgument renders a placeholder against the annotations of a bug.
// References outside the annotation list yield a visible marker instead of
// an empty string.
func formatArgument(p Placeholder, annotations []bugs.Annotation, primaryClass *bugs.ClassAnnotation) string {
	switch {
	case p.Index < 0:
		return fmt.Sprintf("?<?%d/%d???", p.Index, len(annotations))
	case p.Index >= len(annotations):
		return fmt.Sprintf("?>?%d/%d???", p.Index, len(annotations))
	}
	return annotations[p.Index].Format(p.Key, primaryClass)
}

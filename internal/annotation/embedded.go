package annotation

import (
	"regexp"
	"strings"
)

// The upstream generator occasionally leaks its own serialized paragraph
// structure into chapter content. Both markers together are the signature of
// that leak; either one alone is treated as ordinary prose.
const embeddedRefsMarker = "footnote_refs"

var embeddedTextFieldRE = regexp.MustCompile(`"text"\s*:\s*"`)

// NormalizeEmbeddedParagraph detects a paragraph that is itself raw serialized
// structure and recovers just the quoted "text" field values, unescaped and
// joined with a paragraph break. This is a narrowly-scoped workaround for a
// generator defect, not a general deserializer: text without both markers is
// returned unchanged, as is text whose "text" fields cannot be recovered.
func NormalizeEmbeddedParagraph(text string) string {
	if !strings.Contains(text, embeddedRefsMarker) {
		return text
	}
	starts := embeddedTextFieldRE.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return text
	}

	var runs []string
	for _, loc := range starts {
		if run, ok := readQuotedRun(text[loc[1]:]); ok && strings.TrimSpace(run) != "" {
			runs = append(runs, run)
		}
	}
	if len(runs) == 0 {
		return text
	}
	return strings.Join(runs, "\n\n")
}

// readQuotedRun consumes a JSON-style quoted string body (the opening quote
// already consumed), unescaping \" \n \\ and reporting whether a closing
// quote was found.
func readQuotedRun(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case '\\':
				b.WriteByte('\\')
			default:
				// Unknown escape; keep it verbatim.
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		case c == '"':
			return b.String(), true
		default:
			b.WriteByte(c)
		}
	}
	// Unterminated string: the leak is even more mangled than usual. Use
	// what was recovered rather than dropping it.
	return b.String(), b.Len() > 0
}

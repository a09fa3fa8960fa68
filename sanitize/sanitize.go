// Package sanitize makes server-supplied text safe to write to a terminal.
package sanitize

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Text strips escape sequences and control characters from s. Tabs and
// newlines survive; CRLF becomes LF and a lone CR is dropped so a reply
// cannot rewrite lines already on screen.
func Text(s string) string {
	if s == "" {
		return s
	}
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keep reports whether r is printable or an allowed whitespace control.
// C1 controls are dropped too since some terminals honour 0x9b as CSI.
func keep(r rune) bool {
	switch {
	case r == '\t' || r == '\n':
		return true
	case r < 0x20 || r == 0x7f:
		return false
	case r >= 0x80 && r <= 0x9f:
		return false
	}
	return true
}

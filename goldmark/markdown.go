// Package goldmark renders chat replies, which are markdown, to ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
package goldmark

import "github.com/aetheris-dev/aetheris"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// keep their lines as written.
func Render(source string, width int, theme aetheris.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}

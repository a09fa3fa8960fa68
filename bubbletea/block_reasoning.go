package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aetheris-dev/aetheris/sanitize"
)

var _ MessageBlock = (*ReasoningBlock)(nil)

// ReasoningBlock renders streamed reasoning text, faint, under a header
// that toggles it open and closed.
type ReasoningBlock struct {
	content   strings.Builder
	collapsed bool
	styles    Styles
}

// NewReasoningBlock creates an expanded ReasoningBlock.
func NewReasoningBlock(styles Styles) *ReasoningBlock {
	return &ReasoningBlock{styles: styles}
}

// Append adds a reasoning fragment, stripped of terminal escapes.
func (b *ReasoningBlock) Append(text string) {
	b.content.WriteString(sanitize.Text(text))
}

// Collapsed reports whether the body is hidden.
func (b *ReasoningBlock) Collapsed() bool { return b.collapsed }

func (b *ReasoningBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ReasoningBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	indicator := "▼"
	if b.collapsed {
		indicator = "▶"
	}
	header := b.styles.Reasoning.Render(wrap.Render(indicator + " Reasoning"))
	if b.collapsed {
		return header
	}
	return header + "\n" + b.styles.Reasoning.Render(wrap.Render(b.content.String()))
}

package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aetheris-dev/aetheris/sanitize"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

const userPrompt = "> "

// UserMessageBlock shows a sent message behind the accent prompt. Wrapped
// and multi-line text stays aligned with the first line.
type UserMessageBlock struct {
	text   string
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock. Pasted escape sequences
// are stripped so the message cannot restyle the transcript.
func NewUserMessageBlock(text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: sanitize.Text(text), styles: styles}
}

func (b *UserMessageBlock) Update(tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *UserMessageBlock) View(width int) string {
	prompt := b.styles.UserMsg.Render(userPrompt)
	body := b.text
	if w := width - lipgloss.Width(userPrompt); w > 0 {
		body = lipgloss.NewStyle().Width(w).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prompt, body)
}

package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aetheris-dev/aetheris"
	"github.com/aetheris-dev/aetheris/goldmark"
	"github.com/aetheris-dev/aetheris/sanitize"
)

var _ MessageBlock = (*ReplyBlock)(nil)

// ReplyBlock renders streamed answer text as markdown. Paragraphs that are
// complete, ending at a blank line outside a code fence, are rendered once
// per width and cached; only the trailing text is re-rendered per fragment.
type ReplyBlock struct {
	content strings.Builder
	theme   aetheris.Theme

	stable      string
	stableCache map[int]string
}

// NewReplyBlock creates an empty ReplyBlock.
func NewReplyBlock(theme aetheris.Theme) *ReplyBlock {
	return &ReplyBlock{theme: theme, stableCache: make(map[int]string)}
}

// Append adds a content fragment, stripped of terminal escapes.
func (b *ReplyBlock) Append(text string) {
	b.content.WriteString(sanitize.Text(text))
	b.advanceStable()
}

// Text returns the raw markdown received so far.
func (b *ReplyBlock) Text() string { return b.content.String() }

func (b *ReplyBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ReplyBlock) View(width int) string {
	head := b.renderStable(width)
	tail := b.tail()
	if openFence(tail) {
		tail += "\n```"
	}
	if strings.TrimSpace(tail) == "" {
		return head
	}
	rendered := goldmark.Render(tail, width, b.theme)
	if head == "" {
		return rendered
	}
	return strings.TrimRight(head, "\n") + "\n\n" + strings.TrimLeft(rendered, "\n")
}

// advanceStable moves the stable prefix to the last blank line that is not
// inside an open code fence.
func (b *ReplyBlock) advanceStable() {
	raw := b.content.String()
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		if candidate := raw[:idx]; !openFence(candidate) {
			if candidate != b.stable {
				b.stable = candidate
				clear(b.stableCache)
			}
			return
		}
		end = idx
	}
}

func (b *ReplyBlock) renderStable(width int) string {
	if width <= 0 || b.stable == "" {
		return ""
	}
	if cached, ok := b.stableCache[width]; ok {
		return cached
	}
	rendered := goldmark.Render(b.stable, width, b.theme)
	b.stableCache[width] = rendered
	return rendered
}

func (b *ReplyBlock) tail() string {
	raw := b.content.String()
	if b.stable == "" {
		return raw
	}
	return strings.TrimPrefix(raw, b.stable+"\n\n")
}

// openFence reports whether s has an unterminated ``` fence.
func openFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}

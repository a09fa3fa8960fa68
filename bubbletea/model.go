package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/aetheris-dev/aetheris"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the chat UI.
type Model struct {
	// Input is the message input. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation. Exported for test access.
	Viewport viewport.Model
	// Spinner animates while a reply streams.
	Spinner spinner.Model

	streamer  aetheris.ChatStreamer
	conv      *aetheris.Conversation
	theme     aetheris.Theme
	styles    Styles
	reasoning bool
	onTurnEnd func(*aetheris.Conversation)

	blocks []MessageBlock

	// Blocks of the reply being streamed. Nil until the first fragment of
	// their kind arrives.
	activeReasoning *ReasoningBlock
	activeReply     *ReplyBlock
	turnFailed      bool

	running bool
	cancel  context.CancelFunc
	frameCh chan aetheris.Frame
	doneCh  chan error
	err     error
	ready   bool
}

// Option configures a Model.
type Option func(*Model)

// WithReasoning sets whether requests ask for reasoning frames.
func WithReasoning(on bool) Option {
	return func(m *Model) { m.reasoning = on }
}

// WithTurnEnd registers fn to run after every finished reply, for example
// to persist the transcript.
func WithTurnEnd(fn func(*aetheris.Conversation)) Option {
	return func(m *Model) { m.onTurnEnd = fn }
}

// New creates a chat Model streaming through s. Messages already in conv
// are shown on start.
func New(s aetheris.ChatStreamer, conv *aetheris.Conversation, theme aetheris.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask anything..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Accent

	m := Model{
		Input:    ti,
		Spinner:  sp,
		streamer: s,
		conv:     conv,
		theme:    theme,
		styles:   styles,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Running reports whether a reply is streaming.
func (m Model) Running() bool { return m.running }

// Reasoning reports whether the next request asks for reasoning.
func (m Model) Reasoning() bool { return m.reasoning }

// Err returns the last transport error, if any.
func (m Model) Err() error { return m.err }

// Conversation returns the conversation the model appends to.
func (m Model) Conversation() *aetheris.Conversation { return m.conv }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case FrameMsg:
		m = m.applyFrame(msg.Frame)
		m.refresh()
		if m.frameCh != nil {
			return m, listenForFrame(m.frameCh, m.doneCh)
		}
		return m, nil

	case StreamDoneMsg:
		m = m.finishTurn(msg.Err)
		m.refresh()
		cmd := m.Input.Focus()
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	const inputHeight, statusHeight, gaps = 1, 1, 2
	vpHeight := max(msg.Height-inputHeight-statusHeight-gaps, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderTranscript()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.refresh()
	m.Input.Width = msg.Width - runewidth.StringWidth(m.Input.Prompt) - 1
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyCtrlR:
		m.reasoning = !m.reasoning
		return m, nil

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submit(text)

	case tea.KeyTab:
		if m.running {
			return m, nil
		}
		for i := len(m.blocks) - 1; i >= 0; i-- {
			if _, ok := m.blocks[i].(*ReasoningBlock); ok {
				m.blocks[i], _ = m.blocks[i].Update(ToggleMsg{})
				m.Viewport.SetContent(m.renderContent())
				break
			}
		}
		return m, nil
	}

	if m.running {
		return m, nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil

	req := m.conv.Ask(text, m.reasoning)
	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.activeReasoning = nil
	m.activeReply = nil
	m.turnFailed = false
	m.refresh()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.frameCh = make(chan aetheris.Frame, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	return m, tea.Batch(
		startStream(ctx, m.streamer, req, m.frameCh, m.doneCh),
		listenForFrame(m.frameCh, m.doneCh),
		m.Spinner.Tick,
	)
}

// applyFrame folds a frame into the conversation and the visible blocks.
func (m Model) applyFrame(f aetheris.Frame) Model {
	m.conv.Apply(f)
	switch f := f.(type) {
	case aetheris.FrameReasoning:
		if m.activeReasoning == nil {
			m.activeReasoning = NewReasoningBlock(m.styles)
			m.blocks = append(m.blocks, m.activeReasoning)
		}
		m.activeReasoning.Append(f.Text)
	case aetheris.FrameContent:
		if m.activeReply == nil {
			m.activeReply = NewReplyBlock(m.theme)
			m.blocks = append(m.blocks, m.activeReply)
		}
		m.activeReply.Append(f.Text)
	case aetheris.FrameError:
		m.turnFailed = true
		m.blocks = append(m.blocks, NewErrorBlock(f.Message, m.styles))
	}
	return m
}

// finishTurn clears the loading state. It runs whether or not a done frame
// arrived, since a stream may close without one.
func (m Model) finishTurn(err error) Model {
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
	m.cancel = nil
	m.frameCh = nil
	m.doneCh = nil

	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case m.turnFailed:
		m.err = err
	default:
		m.err = err
		m.conv.Fail(err.Error())
		m.blocks = append(m.blocks, NewErrorBlock(err.Error(), m.styles))
	}
	m.conv.Finish()
	m.activeReasoning = nil
	m.activeReply = nil

	if m.onTurnEnd != nil {
		m.onTurnEnd(m.conv)
	}
	return m
}

// renderTranscript creates blocks for messages already in the conversation.
func (m Model) renderTranscript() Model {
	for _, msg := range m.conv.Messages {
		switch msg.Role {
		case aetheris.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Content, m.styles))
		case aetheris.RoleAssistant:
			b := NewReplyBlock(m.theme)
			b.Append(msg.Content)
			m.blocks = append(m.blocks, b)
		}
	}
	return m
}

// refresh re-renders the conversation and scrolls to the end.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) statusLine() string {
	width := m.Viewport.Width
	truncate := func(s string, w int) string {
		if w <= 0 {
			return s
		}
		return runewidth.Truncate(s, w, "…")
	}

	switch {
	case m.running:
		spin := m.Spinner.View() + " "
		return spin + m.styles.Muted.Render(truncate("Streaming... Ctrl+C to stop", width-runewidth.StringWidth(m.Spinner.Spinner.Frames[0])-1))
	case m.err != nil:
		return m.styles.Error.Render(truncate(fmt.Sprintf("Error: %v", m.err), width))
	}

	mode := "off"
	if m.reasoning {
		mode = "on"
	}
	line := fmt.Sprintf("Enter to send · Ctrl+R reasoning %s · Tab fold · Ctrl+C to quit", mode)
	if n := uniseg.GraphemeClusterCount(m.Input.Value()); n > 0 {
		line = fmt.Sprintf("%d chars · %s", n, line)
	}
	return m.styles.Muted.Render(truncate(line, width))
}

// Package bubbletea provides the Bubble Tea chat UI. It streams replies
// through an aetheris.ChatStreamer and renders reasoning, answers and errors
// as they arrive.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aetheris-dev/aetheris"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. Cancelling ctx quits the program.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// FrameMsg delivers one decoded stream frame to the model.
type FrameMsg struct {
	Frame aetheris.Frame
}

// StreamDoneMsg signals that StreamChat returned. Err is nil when the
// stream ended normally, with or without a done frame.
type StreamDoneMsg struct {
	Err error
}

// startStream runs StreamChat in the command goroutine. Callbacks are turned
// back into frames and sent on frameCh; the channel is closed when the call
// returns and the result is left on doneCh.
func startStream(ctx context.Context, s aetheris.ChatStreamer, req aetheris.ChatRequest, frameCh chan<- aetheris.Frame, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		send := func(f aetheris.Frame) {
			select {
			case frameCh <- f:
			case <-ctx.Done():
			}
		}
		err := s.StreamChat(ctx, req, aetheris.Handlers{
			OnReasoning: func(text string) { send(aetheris.FrameReasoning{Text: text}) },
			OnContent:   func(text string) { send(aetheris.FrameContent{Text: text}) },
			OnDone:      func(r aetheris.DoneRecord) { send(aetheris.FrameDone{Record: r}) },
			OnError:     func(msg string) { send(aetheris.FrameError{Message: msg}) },
		})
		close(frameCh)
		doneCh <- err
		return nil
	}
}

// listenForFrame waits for the next frame. Once the channel is closed it
// reports the StreamChat result.
func listenForFrame(ch <-chan aetheris.Frame, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return StreamDoneMsg{Err: <-doneCh}
		}
		return FrameMsg{Frame: f}
	}
}

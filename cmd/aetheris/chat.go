package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aetheris-dev/aetheris"
	bt "github.com/aetheris-dev/aetheris/bubbletea"
	aetherisjson "github.com/aetheris-dev/aetheris/json"
	"github.com/aetheris-dev/aetheris/logger"
)

const chatLongDesc string = `Open the interactive chat.

Replies stream in as they are generated. Reasoning is shown faint and
can be folded with Tab. Ctrl+C stops a reply in flight; a second Ctrl+C
quits.

With --save the transcript is written after every turn. --resume loads
a saved transcript and continues it.

Examples:
  aetheris chat
  aetheris chat --reasoning
  aetheris chat --save notes.json
  aetheris chat --resume notes.json`

const chatShortDesc string = "Interactive streaming chat"

type chatCommander struct {
	app *app

	reasoning bool
	save      string
	resume    string
}

func newChatCmd(a *app) *cobra.Command {
	cmder := &chatCommander{app: a}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().BoolVarP(&cmder.reasoning, "reasoning", "r", false, "Request reasoning with each reply")
	cmd.Flags().StringVar(&cmder.save, "save", "", "Save the transcript to this file after every turn")
	cmd.Flags().StringVar(&cmder.resume, "resume", "", "Resume a saved transcript")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, cmd *cobra.Command) error {
	conv, err := c.conversation()
	if err != nil {
		return err
	}
	savePath := c.save
	if savePath == "" {
		savePath = c.resume
	}

	store, err := c.app.themeStore()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	l := zap.NewNop()
	if c.app.cfg.Debug {
		fl, closeLog, err := logger.NewFile(c.app.cfg.LogPath(), true)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()
		l = fl
	}

	opts := []bt.Option{bt.WithReasoning(c.reasoning || c.app.cfg.Reasoning)}
	if savePath != "" {
		opts = append(opts, bt.WithTurnEnd(func(conv *aetheris.Conversation) {
			if err := aetherisjson.SaveTranscript(savePath, conv); err != nil {
				l.Warn("save transcript failed", zap.String("path", savePath), zap.Error(err))
			}
		}))
	}

	m := bt.New(c.app.newClient(l), conv, store.Theme(), opts...)
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	return nil
}

// conversation resumes the saved transcript or starts a fresh one. A resume
// path that does not exist yet starts fresh.
func (c *chatCommander) conversation() (*aetheris.Conversation, error) {
	if c.resume != "" {
		conv, err := aetherisjson.LoadTranscript(c.resume)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	id, err := c.app.session()
	if err != nil {
		return nil, err
	}
	return aetheris.NewConversation(id), nil
}

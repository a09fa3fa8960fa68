package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aetheris-dev/aetheris"
	"github.com/aetheris-dev/aetheris/goldmark"
	"github.com/aetheris-dev/aetheris/sanitize"
)

const askLongDesc string = `Ask a single question and print the answer.

The answer streams to stdout as it is generated. Reasoning, when
requested, streams faint to stderr so stdout stays pipeable.

Examples:
  aetheris ask "format this json for me"
  aetheris ask --reasoning "which tool extracts fields?"
  aetheris ask --no-stream "hello"
  aetheris ask --render "show me a markdown table"`

const askShortDesc string = "Ask one question and stream the answer"

// renderWidth is the wrap width used for --render.
const renderWidth = 80

type askCommander struct {
	app *app

	reasoning bool
	noStream  bool
	render    bool
}

func newAskCmd(a *app) *cobra.Command {
	cmder := &askCommander{app: a}

	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVarP(&cmder.reasoning, "reasoning", "r", false, "Request and print reasoning")
	cmd.Flags().BoolVar(&cmder.noStream, "no-stream", false, "Use the non-streaming chat endpoint")
	cmd.Flags().BoolVar(&cmder.render, "render", false, "Render the answer as markdown once it is complete")

	return cmd
}

func (c *askCommander) run(ctx context.Context, cmd *cobra.Command, message string) error {
	id, err := c.app.session()
	if err != nil {
		return err
	}
	conv := aetheris.NewConversation(id)
	req := conv.Ask(message, c.reasoning || c.app.cfg.Reasoning)

	if c.noStream {
		reply, err := c.app.client.Chat(ctx, req)
		if err != nil {
			return err
		}
		return c.print(cmd.OutOrStdout(), sanitize.Text(reply.Reply)+"\n")
	}

	out := cmd.OutOrStdout()
	faint := lipgloss.NewStyle().Faint(true)
	var failure string
	h := conv.Handlers()
	fold := h
	h.OnReasoning = func(text string) {
		fold.OnReasoning(text)
		fmt.Fprint(cmd.ErrOrStderr(), faint.Render(sanitize.Text(text)))
	}
	h.OnContent = func(text string) {
		fold.OnContent(text)
		if !c.render {
			fmt.Fprint(out, sanitize.Text(text))
		}
	}
	h.OnError = func(message string) {
		fold.OnError(message)
		failure = sanitize.Text(message)
	}

	err = c.app.client.StreamChat(ctx, req, h)
	conv.Finish()
	if err != nil {
		return err
	}
	if failure != "" {
		return errors.New(failure)
	}
	if c.render {
		return c.print(out, sanitize.Text(conv.Content()))
	}
	fmt.Fprintln(out)
	return nil
}

func (c *askCommander) print(w io.Writer, text string) error {
	if c.render {
		store, err := c.app.themeStore()
		if err != nil {
			return err
		}
		text = goldmark.Render(text, renderWidth, store.Theme()) + "\n"
	}
	_, err := fmt.Fprint(w, text)
	return err
}

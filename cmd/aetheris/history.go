package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const historyLongDesc string = `Print the server-side chat history of the session.

With --clear the history is deleted instead.

Examples:
  aetheris history
  aetheris history --session default --clear`

const historyShortDesc string = "Show or clear the chat history"

type historyCommander struct {
	app *app

	clear bool
}

func newHistoryCmd(a *app) *cobra.Command {
	cmder := &historyCommander{app: a}

	cmd := &cobra.Command{
		Use:   "history",
		Short: historyShortDesc,
		Long:  historyLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().BoolVar(&cmder.clear, "clear", false, "Delete the history")

	return cmd
}

func (c *historyCommander) run(ctx context.Context, cmd *cobra.Command) error {
	id, err := c.app.session()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if c.clear {
		if err := c.app.client.ClearHistory(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared history of session %s\n", id)
		return nil
	}

	msgs, err := c.app.client.History(ctx, id)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(out, "No history.")
		return nil
	}
	role := lipgloss.NewStyle().Bold(true)
	for _, m := range msgs {
		stamp := ""
		if m.Timestamp > 0 {
			stamp = " " + time.UnixMilli(m.Timestamp).Format(time.DateTime)
		}
		fmt.Fprintf(out, "%s%s\n%s\n\n", role.Render(string(m.Role)), stamp, m.Content)
	}
	return nil
}

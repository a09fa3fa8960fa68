package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const toolsLongDesc string = `List, inspect and run the tools registered on the server.

Examples:
  aetheris tools list
  aetheris tools show json_formatter
  aetheris tools exec json_formatter --param indent:=4 --param input='{"a":1}'
  aetheris tools exec json_field_extractor --params-json '{"input":"[]","fields":["id"]}'`

const toolsShortDesc string = "Work with server tools"

func newToolsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: toolsShortDesc,
		Long:  toolsLongDesc,
	}
	cmd.AddCommand(newToolsListCmd(a), newToolsShowCmd(a), newToolsExecCmd(a))
	return cmd
}

func newToolsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := a.client.Tools(cmd.Context())
			if err != nil {
				return err
			}
			if len(tools) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tools.")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "CATEGORY", "DESCRIPTION")
			for _, tool := range tools {
				t.Row(tool.ID, tool.Name, tool.Category, tool.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

func newToolsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tool-id>",
		Short: "Show one tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := a.client.Tool(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", tool.ID)
			fmt.Fprintf(out, "Name:        %s\n", tool.Name)
			fmt.Fprintf(out, "Category:    %s\n", tool.Category)
			if tool.Version != "" {
				fmt.Fprintf(out, "Version:     %s\n", tool.Version)
			}
			if len(tool.Keywords) > 0 {
				fmt.Fprintf(out, "Keywords:    %s\n", strings.Join(tool.Keywords, ", "))
			}
			fmt.Fprintf(out, "Description: %s\n", tool.Description)
			return nil
		},
	}
}

type toolsExecCommander struct {
	app *app

	params     []string
	paramsJSON string
	noCache    bool
}

func newToolsExecCmd(a *app) *cobra.Command {
	cmder := &toolsExecCommander{app: a}

	cmd := &cobra.Command{
		Use:   "exec <tool-id>",
		Short: "Execute a tool and print its JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringArrayVarP(&cmder.params, "param", "p", nil, "Parameter as key=value, or key:=json for a raw JSON value (repeatable)")
	cmd.Flags().StringVar(&cmder.paramsJSON, "params-json", "", "All parameters as one JSON object")
	cmd.Flags().BoolVar(&cmder.noCache, "no-cache", false, "Bypass the server result cache")

	return cmd
}

func (c *toolsExecCommander) run(ctx context.Context, cmd *cobra.Command, id string) error {
	params, err := parseParams(c.paramsJSON, c.params)
	if err != nil {
		return err
	}
	raw, err := c.app.client.ExecuteTool(ctx, id, params, !c.noCache)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}

// parseParams merges the --params-json object with the --param pairs.
// key=value sends a string; key:=value sends value decoded as JSON.
func parseParams(paramsJSON string, pairs []string) (map[string]any, error) {
	params := map[string]any{}
	if paramsJSON != "" {
		if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
			return nil, fmt.Errorf("invalid --params-json: %w", err)
		}
	}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" || key == ":" {
			return nil, fmt.Errorf("invalid --param %q: want key=value or key:=json", p)
		}
		raw, isJSON := strings.CutSuffix(key, ":")
		if !isJSON {
			params[key] = value
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", p, err)
		}
		params[raw] = v
	}
	return params, nil
}

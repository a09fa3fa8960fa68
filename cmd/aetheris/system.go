package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aetheris-dev/aetheris"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", h.Status)
			keys := make([]string, 0, len(h.Cache))
			for k := range h.Cache {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "  cache.%s: %v\n", k, h.Cache[k])
			}
			return nil
		},
	}
}

func newNavCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "Print the tool navigation tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := a.client.Navigation(cmd.Context())
			if err != nil {
				return err
			}
			writeTree(cmd.OutOrStdout(), nodes, "")
			return nil
		},
	}
}

var categoryStyle = lipgloss.NewStyle().Bold(true)

// writeTree prints nodes with box-drawing branches.
func writeTree(w io.Writer, nodes []aetheris.NavigationNode, prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		label := n.Label
		if n.Type == "category" {
			label = categoryStyle.Render(label)
		} else if n.ID != "" {
			label += " (" + n.ID + ")"
		}
		fmt.Fprintln(w, strings.TrimRight(prefix+branch+label, " "))
		writeTree(w, n.Children, prefix+next)
	}
}

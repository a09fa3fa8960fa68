package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aetheris-dev/aetheris"
)

const themeLongDesc string = `Show or change the theme preferences.

The preferences are shared by every aetheris command and stored in
~/.aetheris/theme.json.

Examples:
  aetheris theme show
  aetheris theme color purple
  aetheris theme dark on
  aetheris theme dark toggle
  aetheris theme reset`

const themeShortDesc string = "Show or change the theme"

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: themeShortDesc,
		Long:  themeLongDesc,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current theme and the available colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.themeStore()
			if err != nil {
				return err
			}
			printTheme(cmd, store.Prefs())
			return nil
		},
	}

	color := &cobra.Command{
		Use:       "color <key>",
		Short:     "Set the accent colour",
		Args:      cobra.ExactArgs(1),
		ValidArgs: aetheris.ColorKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTheme(a, cmd, func(s *aetheris.ThemeStore) error {
				return s.SetColorKey(strings.ToLower(args[0]))
			})
		},
	}

	dark := &cobra.Command{
		Use:       "dark [on|off|toggle]",
		Short:     "Switch dark mode (toggles when no argument is given)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := "toggle"
			if len(args) == 1 {
				mode = args[0]
			}
			return updateTheme(a, cmd, func(s *aetheris.ThemeStore) error {
				switch mode {
				case "on":
					return s.SetDarkMode(true)
				case "off":
					return s.SetDarkMode(false)
				case "toggle":
					return s.ToggleDarkMode()
				default:
					return fmt.Errorf("dark mode must be on, off or toggle, got %q: %w", mode, aetheris.ErrValidation)
				}
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTheme(a, cmd, (*aetheris.ThemeStore).Reset)
		},
	}

	cmd.AddCommand(show, color, dark, reset)
	return cmd
}

func updateTheme(a *app, cmd *cobra.Command, fn func(*aetheris.ThemeStore) error) error {
	store, err := a.themeStore()
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		return err
	}
	printTheme(cmd, store.Prefs())
	return nil
}

func printTheme(cmd *cobra.Command, prefs aetheris.ThemePrefs) {
	out := cmd.OutOrStdout()
	mode := "light"
	if prefs.DarkMode {
		mode = "dark"
	}
	fmt.Fprintf(out, "Color: %s\nMode:  %s\n\n", prefs.ColorKey, mode)
	for _, key := range aetheris.ColorKeys() {
		c := aetheris.ThemeColors[key]
		marker := "  "
		if key == prefs.ColorKey {
			marker = "* "
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(c.ANSI)).Render("■")
		fmt.Fprintf(out, "%s%s %-7s %s %s\n", marker, swatch, key, c.Name, c.Primary)
	}
}

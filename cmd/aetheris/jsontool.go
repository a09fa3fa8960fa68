package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aetheris-dev/aetheris"
	"github.com/aetheris-dev/aetheris/fs"
)

const jsonLongDesc string = `Run the server JSON tools over local files.

Patterns support ** for recursive matching. Quote them so the shell
does not expand them first.

Examples:
  aetheris json format data.json
  aetheris json format --indent 4 --sort-keys --write 'fixtures/**/*.json'
  aetheris json extract --fields id,user.name --format csv 'logs/*.json'`

const jsonShortDesc string = "Format JSON or extract fields"

func newJSONCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json",
		Short: jsonShortDesc,
		Long:  jsonLongDesc,
	}
	cmd.AddCommand(newJSONFormatCmd(a), newJSONExtractCmd(a))
	return cmd
}

type jsonFormatCommander struct {
	app *app

	indent   int
	sortKeys bool
	compress bool
	write    bool
}

func newJSONFormatCmd(a *app) *cobra.Command {
	cmder := &jsonFormatCommander{app: a}

	cmd := &cobra.Command{
		Use:   "format <pattern>",
		Short: "Format JSON files with the json_formatter tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().IntVar(&cmder.indent, "indent", 2, "Indent width")
	cmd.Flags().BoolVar(&cmder.sortKeys, "sort-keys", false, "Sort object keys")
	cmd.Flags().BoolVar(&cmder.compress, "compress", false, "Print the compressed form instead")
	cmd.Flags().BoolVarP(&cmder.write, "write", "w", false, "Write the result back to each file")

	return cmd
}

func (c *jsonFormatCommander) run(ctx context.Context, cmd *cobra.Command, pattern string) error {
	files, err := fs.ReadFiles(pattern)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, f := range files {
		params := aetheris.FormatJSONParams(string(f.Data), c.indent, c.sortKeys)
		raw, err := c.app.client.ExecuteTool(ctx, aetheris.ToolJSONFormatter, params, true)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		res, err := aetheris.DecodeToolResult[aetheris.FormatResult](raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		text := res.Formatted
		if c.compress {
			text = res.Compressed
		}

		if c.write {
			if err := os.WriteFile(f.Path, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", f.Path, err)
			}
			c.app.logger.Debug("formatted",
				zap.String("path", f.Path),
				zap.Int("keys", res.Stats.KeysCount))
			fmt.Fprintf(out, "%s: %d keys\n", f.Path, res.Stats.KeysCount)
			continue
		}
		if len(files) > 1 {
			fmt.Fprintf(out, "// %s\n", f.Path)
		}
		fmt.Fprintln(out, text)
	}
	return nil
}

type jsonExtractCommander struct {
	app *app

	fields string
	format string
}

func newJSONExtractCmd(a *app) *cobra.Command {
	cmder := &jsonExtractCommander{app: a}

	cmd := &cobra.Command{
		Use:   "extract <pattern>",
		Short: "Extract fields from JSON files with the json_field_extractor tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.fields, "fields", "f", "", "Comma-separated field paths, dot notation for nesting (required)")
	cmd.Flags().StringVar(&cmder.format, "format", "csv", "Output format: csv or txt")
	_ = cmd.MarkFlagRequired("fields")

	return cmd
}

func (c *jsonExtractCommander) run(ctx context.Context, cmd *cobra.Command, pattern string) error {
	var fields []string
	for _, f := range strings.Split(c.fields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("--fields: at least one field is required: %w", aetheris.ErrValidation)
	}

	files, err := fs.ReadFiles(pattern)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, f := range files {
		params := aetheris.ExtractFieldsParams(string(f.Data), fields, c.format)
		raw, err := c.app.client.ExecuteTool(ctx, aetheris.ToolJSONFieldExtractor, params, true)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		res, err := aetheris.DecodeToolResult[aetheris.ExtractResult](raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		if len(files) > 1 {
			fmt.Fprintf(out, "# %s\n", f.Path)
		}
		fmt.Fprintln(out, res.Output)
		if res.Stats != nil {
			for _, name := range fields {
				if missing := res.Stats.FieldsMissing[name]; missing > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: field %s missing in %d of %d records\n",
						f.Path, name, missing, res.Stats.TotalRecords)
				}
			}
		}
	}
	return nil
}

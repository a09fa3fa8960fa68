package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aetheris-dev/aetheris"
)

const codeLongDesc string = `Generate QR codes and barcodes on the server.

Examples:
  aetheris code formats
  aetheris code gen https://example.com --out qr.png
  aetheris code gen 5901234123457 --type barcode --barcode-format ean13 --out bar.png
  aetheris code gen hello --template poster.png --x 40 --y 40 --out poster-qr.png
  aetheris code batch --out codes/ one two three`

const codeShortDesc string = "Generate QR codes and barcodes"

func newCodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: codeShortDesc,
		Long:  codeLongDesc,
	}
	cmd.AddCommand(newCodeFormatsCmd(a), newCodeGenCmd(a), newCodeBatchCmd(a))
	return cmd
}

func newCodeFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported barcode and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.client.CodeFormats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Barcode formats:   %s\n", strings.Join(f.BarcodeFormats, ", "))
			fmt.Fprintf(out, "QR error correct:  %s\n", strings.Join(f.QRErrorCorrect, ", "))
			fmt.Fprintf(out, "Output formats:    %s\n", strings.Join(f.OutputFormats, ", "))
			return nil
		},
	}
}

// codeFlags are the generator parameters shared by gen and batch.
type codeFlags struct {
	codeType      string
	barcodeFormat string
	errorCorrect  string
	boxSize       int
	border        int
	fillColor     string
	backColor     string
	width         int
	height        int
	format        string
	quality       int
}

func (f *codeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.codeType, "type", "t", string(aetheris.CodeTypeQR), "Code type: qrcode or barcode")
	cmd.Flags().StringVar(&f.barcodeFormat, "barcode-format", "", "Barcode format, e.g. code128, ean13")
	cmd.Flags().StringVar(&f.errorCorrect, "error-correct", "", "QR error correction: L, M, Q or H")
	cmd.Flags().IntVar(&f.boxSize, "box-size", 0, "QR module size in pixels")
	cmd.Flags().IntVar(&f.border, "border", 0, "QR border in modules")
	cmd.Flags().StringVar(&f.fillColor, "fill", "", "QR foreground colour")
	cmd.Flags().StringVar(&f.backColor, "back", "", "QR background colour")
	cmd.Flags().IntVar(&f.width, "width", 0, "Output width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "Output height in pixels")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: png, jpeg, ...")
	cmd.Flags().IntVar(&f.quality, "quality", 0, "Output quality, 1-100")
}

func (f *codeFlags) request(content string) aetheris.CodeRequest {
	return aetheris.CodeRequest{
		Content:        content,
		CodeType:       aetheris.CodeType(f.codeType),
		BarcodeFormat:  f.barcodeFormat,
		QRErrorCorrect: strings.ToUpper(f.errorCorrect),
		QRBoxSize:      f.boxSize,
		QRBorder:       f.border,
		QRFillColor:    f.fillColor,
		QRBackColor:    f.backColor,
		OutputWidth:    f.width,
		OutputHeight:   f.height,
		OutputFormat:   f.format,
		OutputQuality:  f.quality,
	}
}

type codeGenCommander struct {
	app *app
	codeFlags

	out      string
	template string
	x, y     int
}

func newCodeGenCmd(a *app) *cobra.Command {
	cmder := &codeGenCommander{app: a}

	cmd := &cobra.Command{
		Use:   "gen <content>",
		Short: "Generate one code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmder.register(cmd)
	cmd.Flags().StringVarP(&cmder.out, "out", "o", "", "Write the decoded image here instead of printing base64")
	cmd.Flags().StringVar(&cmder.template, "template", "", "Composite the code onto this template image")
	cmd.Flags().IntVar(&cmder.x, "x", 0, "Template position x")
	cmd.Flags().IntVar(&cmder.y, "y", 0, "Template position y")

	return cmd
}

func (c *codeGenCommander) run(ctx context.Context, cmd *cobra.Command, content string) error {
	req := c.request(content)

	var (
		res aetheris.CodeResult
		err error
	)
	if c.template != "" {
		f, openErr := os.Open(c.template)
		if openErr != nil {
			return fmt.Errorf("open template: %w", openErr)
		}
		defer f.Close()
		req.PositionX, req.PositionY = c.x, c.y
		res, err = c.app.client.GenerateCodeWithTemplate(ctx, req, aetheris.Template{Filename: c.template, Body: f})
	} else {
		res, err = c.app.client.GenerateCode(ctx, req)
	}
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%s: %w", res.Error, aetheris.ErrAPI)
	}
	return writeCode(cmd, res, c.out)
}

type codeBatchCommander struct {
	app *app
	codeFlags

	outDir        string
	maxConcurrent int
}

func newCodeBatchCmd(a *app) *cobra.Command {
	cmder := &codeBatchCommander{app: a}

	cmd := &cobra.Command{
		Use:   "batch <content...>",
		Short: "Generate several code images sharing the same settings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args)
		},
	}

	cmder.register(cmd)
	cmd.Flags().StringVarP(&cmder.outDir, "out", "o", "", "Directory to write the images to")
	cmd.Flags().IntVar(&cmder.maxConcurrent, "max-concurrent", 0, "Server-side concurrency limit")

	return cmd
}

func (c *codeBatchCommander) run(ctx context.Context, cmd *cobra.Command, contents []string) error {
	common := c.request("")
	req := aetheris.BatchCodeRequest{
		CommonConfig:  &common,
		MaxConcurrent: c.maxConcurrent,
	}
	for _, content := range contents {
		req.Items = append(req.Items, aetheris.CodeRequest{Content: content})
	}

	res, err := c.app.client.GenerateCodeBatch(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, r := range res.Results {
		if !r.Success {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", r.Content, r.Error)
			continue
		}
		if c.outDir == "" {
			fmt.Fprintf(out, "%s\t%s\n", r.Content, r.Image)
			continue
		}
		ext := r.Format
		if ext == "" {
			ext = "png"
		}
		path := filepath.Join(c.outDir, fmt.Sprintf("code-%03d.%s", i+1, strings.ToLower(ext)))
		if err := writeImage(path, r.Image); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", r.Content, path)
	}
	fmt.Fprintf(out, "%d of %d succeeded\n", res.Succeeded, res.Total)
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d codes failed: %w", res.Failed, res.Total, aetheris.ErrAPI)
	}
	return nil
}

// writeCode prints the result as JSON, or writes the image when path is set.
func writeCode(cmd *cobra.Command, res aetheris.CodeResult, path string) error {
	if path == "" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if err := writeImage(path, res.Image); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d %s)\n", path, res.Width, res.Height, res.Format)
	return nil
}

// writeImage decodes a base64 image, tolerating a data URL prefix.
func writeImage(path, b64 string) error {
	if _, after, ok := strings.Cut(b64, ";base64,"); ok {
		b64 = after
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

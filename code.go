package aetheris

import (
	"context"
	"fmt"
	"io"
	"slices"
)

// CodeType selects the kind of code image to generate.
type CodeType string

const (
	CodeTypeQR      CodeType = "qrcode"
	CodeTypeBarcode CodeType = "barcode"
)

// QRErrorCorrections are the accepted QR error-correction levels.
var QRErrorCorrections = []string{"L", "M", "Q", "H"}

// CodeRequest carries the parameters of one code image. Zero values leave the
// server default in place.
type CodeRequest struct {
	Content       string   `json:"content,omitempty"`
	CodeType      CodeType `json:"code_type,omitempty"`
	BarcodeFormat string   `json:"barcode_format,omitempty"`

	QRVersion      int    `json:"qr_version,omitempty"`
	QRErrorCorrect string `json:"qr_error_correct,omitempty"`
	QRBoxSize      int    `json:"qr_box_size,omitempty"`
	QRBorder       int    `json:"qr_border,omitempty"`
	QRFillColor    string `json:"qr_fill_color,omitempty"`
	QRBackColor    string `json:"qr_back_color,omitempty"`

	BarcodeWidth     float64 `json:"barcode_width,omitempty"`
	BarcodeHeight    float64 `json:"barcode_height,omitempty"`
	BarcodeWriteText *bool   `json:"barcode_write_text,omitempty"`

	OutputWidth   int    `json:"output_width,omitempty"`
	OutputHeight  int    `json:"output_height,omitempty"`
	OutputFormat  string `json:"output_format,omitempty"`
	OutputQuality int    `json:"output_quality,omitempty"`

	PositionX int `json:"position_x,omitempty"`
	PositionY int `json:"position_y,omitempty"`
}

// CodeResult is the outcome of generating one code image.
type CodeResult struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Image   string `json:"base64,omitempty"` // Base64-encoded image bytes.
	Format  string `json:"format,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CodeFormats lists what the generator supports.
type CodeFormats struct {
	BarcodeFormats []string `json:"barcode_formats"`
	QRErrorCorrect []string `json:"qrcode_error_correct"`
	OutputFormats  []string `json:"output_formats"`
}

// BatchCodeRequest generates several codes sharing CommonConfig. Fields set
// on an item override the common ones.
type BatchCodeRequest struct {
	Items         []CodeRequest `json:"items"`
	CommonConfig  *CodeRequest  `json:"common_config,omitempty"`
	MaxConcurrent int           `json:"max_concurrent,omitempty"`
}

// BatchCodeResult summarises a batch generation.
type BatchCodeResult struct {
	Success   bool         `json:"success"`
	Total     int          `json:"total"`
	Succeeded int          `json:"success_count"`
	Failed    int          `json:"fail_count"`
	Results   []CodeResult `json:"results"`
	Error     string       `json:"error,omitempty"`
}

// Template is an image the generated code is composited onto.
type Template struct {
	Filename string
	Body     io.Reader
}

// CodeService generates barcode and QR code images.
type CodeService interface {
	CodeFormats(ctx context.Context) (CodeFormats, error)
	GenerateCode(ctx context.Context, req CodeRequest) (CodeResult, error)
	GenerateCodeBatch(ctx context.Context, req BatchCodeRequest) (BatchCodeResult, error)
	GenerateCodeWithTemplate(ctx context.Context, req CodeRequest, tmpl Template) (CodeResult, error)
}

// Validate checks the parameters the server would otherwise reject or
// silently replace.
func (r CodeRequest) Validate() error {
	if r.Content == "" {
		return fmt.Errorf("content must not be empty: %w", ErrValidation)
	}
	return r.validateParams()
}

func (r CodeRequest) validateParams() error {
	switch r.CodeType {
	case "", CodeTypeQR, CodeTypeBarcode:
	default:
		return fmt.Errorf("unknown code type %q: %w", r.CodeType, ErrValidation)
	}
	if r.QRErrorCorrect != "" && !slices.Contains(QRErrorCorrections, r.QRErrorCorrect) {
		return fmt.Errorf("qr error correction must be one of L, M, Q, H, got %q: %w", r.QRErrorCorrect, ErrValidation)
	}
	if r.OutputQuality != 0 && (r.OutputQuality < 1 || r.OutputQuality > 100) {
		return fmt.Errorf("output quality must be in [1, 100], got %d: %w", r.OutputQuality, ErrValidation)
	}
	return nil
}

// Validate checks the common config and every item of the batch. An item
// may leave Content empty when CommonConfig supplies it; empty fields are
// omitted on the wire so the common value applies.
func (r BatchCodeRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("batch has no items: %w", ErrValidation)
	}
	if r.MaxConcurrent < 0 {
		return fmt.Errorf("max concurrent must be non-negative, got %d: %w", r.MaxConcurrent, ErrValidation)
	}
	common := CodeRequest{}
	if r.CommonConfig != nil {
		common = *r.CommonConfig
		if err := common.validateParams(); err != nil {
			return fmt.Errorf("common config: %w", err)
		}
	}
	for i, item := range r.Items {
		if item.Content == "" && common.Content == "" {
			return fmt.Errorf("item %d: content must not be empty: %w", i, ErrValidation)
		}
		if err := item.validateParams(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

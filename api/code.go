package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/aetheris-dev/aetheris"
)

// CodeFormats lists the barcode formats, QR error-correction levels and
// output formats the generator supports.
func (c *Client) CodeFormats(ctx context.Context) (aetheris.CodeFormats, error) {
	var f aetheris.CodeFormats
	if err := c.getJSON(ctx, codeFormatsPath, &f); err != nil {
		return aetheris.CodeFormats{}, err
	}
	return f, nil
}

// GenerateCode renders one barcode or QR code image.
func (c *Client) GenerateCode(ctx context.Context, req aetheris.CodeRequest) (aetheris.CodeResult, error) {
	if err := req.Validate(); err != nil {
		return aetheris.CodeResult{}, fmt.Errorf("api: %w", err)
	}
	var res aetheris.CodeResult
	if err := c.postJSON(ctx, codeGeneratePath, req, &res); err != nil {
		return aetheris.CodeResult{}, err
	}
	return res, nil
}

// GenerateCodeBatch renders several codes in one call.
func (c *Client) GenerateCodeBatch(ctx context.Context, req aetheris.BatchCodeRequest) (aetheris.BatchCodeResult, error) {
	if err := req.Validate(); err != nil {
		return aetheris.BatchCodeResult{}, fmt.Errorf("api: %w", err)
	}
	var res aetheris.BatchCodeResult
	if err := c.postJSON(ctx, codeBatchPath, req, &res); err != nil {
		return aetheris.BatchCodeResult{}, err
	}
	return res, nil
}

// GenerateCodeWithTemplate renders a code and composites it onto the
// template image at the request position. The request is sent as a
// multipart form with the image under the "template" field.
func (c *Client) GenerateCodeWithTemplate(ctx context.Context, req aetheris.CodeRequest, tmpl aetheris.Template) (aetheris.CodeResult, error) {
	if err := req.Validate(); err != nil {
		return aetheris.CodeResult{}, fmt.Errorf("api: %w", err)
	}
	if tmpl.Body == nil {
		return aetheris.CodeResult{}, fmt.Errorf("api: template image is required: %w", aetheris.ErrValidation)
	}

	var buf bytes.Buffer
	contentType, err := writeTemplateForm(&buf, req, tmpl)
	if err != nil {
		return aetheris.CodeResult{}, fmt.Errorf("api: build form: %w", err)
	}

	var res aetheris.CodeResult
	if err := c.do(ctx, http.MethodPost, codeTemplatePath, contentType, &buf, &res); err != nil {
		return aetheris.CodeResult{}, err
	}
	return res, nil
}

type formField struct {
	name  string
	value string
	set   bool
}

// writeTemplateForm encodes req and the template as multipart/form-data and
// returns the content type carrying the boundary.
func writeTemplateForm(w io.Writer, req aetheris.CodeRequest, tmpl aetheris.Template) (string, error) {
	mw := multipart.NewWriter(w)

	codeType := req.CodeType
	if codeType == "" {
		codeType = aetheris.CodeTypeQR
	}
	fields := []formField{
		{"content", req.Content, true},
		{"code_type", string(codeType), true},
		{"barcode_format", req.BarcodeFormat, req.BarcodeFormat != ""},
		{"position_x", strconv.Itoa(req.PositionX), true},
		{"position_y", strconv.Itoa(req.PositionY), true},
		{"output_format", req.OutputFormat, req.OutputFormat != ""},
		{"output_quality", strconv.Itoa(req.OutputQuality), req.OutputQuality != 0},
		{"qr_version", strconv.Itoa(req.QRVersion), req.QRVersion != 0},
		{"qr_error_correct", req.QRErrorCorrect, req.QRErrorCorrect != ""},
		{"qr_box_size", strconv.Itoa(req.QRBoxSize), req.QRBoxSize != 0},
		{"qr_border", strconv.Itoa(req.QRBorder), req.QRBorder != 0},
		{"qr_fill_color", req.QRFillColor, req.QRFillColor != ""},
		{"qr_back_color", req.QRBackColor, req.QRBackColor != ""},
		{"barcode_width", strconv.FormatFloat(req.BarcodeWidth, 'f', -1, 64), req.BarcodeWidth != 0},
		{"barcode_height", strconv.FormatFloat(req.BarcodeHeight, 'f', -1, 64), req.BarcodeHeight != 0},
		{"output_width", strconv.Itoa(req.OutputWidth), req.OutputWidth != 0},
		{"output_height", strconv.Itoa(req.OutputHeight), req.OutputHeight != 0},
	}
	if req.BarcodeWriteText != nil {
		fields = append(fields, formField{"barcode_write_text", strconv.FormatBool(*req.BarcodeWriteText), true})
	}
	for _, f := range fields {
		if !f.set {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return "", err
		}
	}

	name := tmpl.Filename
	if name == "" {
		name = "template.png"
	}
	part, err := mw.CreateFormFile("template", filepath.Base(name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, tmpl.Body); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

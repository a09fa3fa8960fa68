package aetheris_test

import (
	"testing"

	"github.com/aetheris-dev/aetheris"
	"github.com/stretchr/testify/assert"
)

func TestChatRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     aetheris.ChatRequest
		wantErr bool
	}{
		{"valid", aetheris.ChatRequest{Message: "hi"}, false},
		{"empty message", aetheris.ChatRequest{}, true},
		{"context at window", aetheris.ChatRequest{Message: "hi", Context: make([]aetheris.ChatMessage, aetheris.ContextWindow)}, false},
		{"context beyond window", aetheris.ChatRequest{Message: "hi", Context: make([]aetheris.ChatMessage, 25)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, aetheris.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCodeRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     aetheris.CodeRequest
		wantErr bool
	}{
		{"minimal", aetheris.CodeRequest{Content: "x"}, false},
		{"barcode", aetheris.CodeRequest{Content: "123", CodeType: aetheris.CodeTypeBarcode, BarcodeFormat: "ean13"}, false},
		{"empty content", aetheris.CodeRequest{CodeType: aetheris.CodeTypeQR}, true},
		{"unknown type", aetheris.CodeRequest{Content: "x", CodeType: "datamatrix"}, true},
		{"bad error correction", aetheris.CodeRequest{Content: "x", QRErrorCorrect: "X"}, true},
		{"quality too high", aetheris.CodeRequest{Content: "x", OutputQuality: 101}, true},
		{"quality in range", aetheris.CodeRequest{Content: "x", OutputQuality: 95}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, aetheris.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBatchCodeRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, aetheris.BatchCodeRequest{}.Validate(), aetheris.ErrValidation)
	})

	t.Run("content from common config", func(t *testing.T) {
		t.Parallel()
		req := aetheris.BatchCodeRequest{
			Items:        []aetheris.CodeRequest{{QRBoxSize: 5}},
			CommonConfig: &aetheris.CodeRequest{Content: "shared"},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("item without content and no common content", func(t *testing.T) {
		t.Parallel()
		req := aetheris.BatchCodeRequest{
			Items:        []aetheris.CodeRequest{{Content: "a"}, {QRBoxSize: 5}},
			CommonConfig: &aetheris.CodeRequest{QRBorder: 2},
		}
		err := req.Validate()
		assert.ErrorIs(t, err, aetheris.ErrValidation)
		assert.Contains(t, err.Error(), "item 1")
	})

	t.Run("invalid common config", func(t *testing.T) {
		t.Parallel()
		req := aetheris.BatchCodeRequest{
			Items:        []aetheris.CodeRequest{{Content: "a"}},
			CommonConfig: &aetheris.CodeRequest{QRErrorCorrect: "Z"},
		}
		err := req.Validate()
		assert.ErrorIs(t, err, aetheris.ErrValidation)
		assert.Contains(t, err.Error(), "common config")
	})

	t.Run("reports failing item", func(t *testing.T) {
		t.Parallel()
		req := aetheris.BatchCodeRequest{
			Items: []aetheris.CodeRequest{{Content: "a"}, {Content: "b", CodeType: "nope"}},
		}
		err := req.Validate()
		assert.ErrorIs(t, err, aetheris.ErrValidation)
		assert.Contains(t, err.Error(), "item 1")
	})
}

func TestToolParams(t *testing.T) {
	t.Parallel()

	p := aetheris.FormatJSONParams(`{"a":1}`, 4, true)
	assert.Equal(t, `{"a":1}`, p["input"])
	assert.Equal(t, 4, p["indent"])
	assert.Equal(t, true, p["sort_keys"])

	e := aetheris.ExtractFieldsParams(`[]`, []string{"a.b"}, "")
	assert.Equal(t, "csv", e["output_format"])
	assert.Equal(t, []string{"a.b"}, e["fields"])
}

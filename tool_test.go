package aetheris_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetheris-dev/aetheris"
)

func TestDecodeToolResult(t *testing.T) {
	t.Parallel()

	t.Run("format result", func(t *testing.T) {
		t.Parallel()
		raw := json.RawMessage(`{"success":true,"formatted":"{\n  \"a\": 1\n}","compressed":"{\"a\":1}","stats":{"original_length":7,"keys_count":1}}`)
		res, err := aetheris.DecodeToolResult[aetheris.FormatResult](raw)
		require.NoError(t, err)
		assert.Equal(t, "{\"a\":1}", res.Compressed)
		assert.Equal(t, 7, res.Stats.OriginalLength)
		assert.Equal(t, 1, res.Stats.KeysCount)
	})

	t.Run("extract result", func(t *testing.T) {
		t.Parallel()
		raw := json.RawMessage(`{"success":true,"results":[{"id":1}],"output":"id\n1","output_format":"csv","stats":{"total_records":1,"fields_found":{"id":1}}}`)
		res, err := aetheris.DecodeToolResult[aetheris.ExtractResult](raw)
		require.NoError(t, err)
		assert.Equal(t, "id\n1", res.Output)
		require.NotNil(t, res.Stats)
		assert.Equal(t, 1, res.Stats.FieldsFound["id"])
	})

	t.Run("reported failure wraps ErrAPI", func(t *testing.T) {
		t.Parallel()
		_, err := aetheris.DecodeToolResult[aetheris.FormatResult](json.RawMessage(`{"success":false,"error":"invalid JSON"}`))
		require.ErrorIs(t, err, aetheris.ErrAPI)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("failure without message", func(t *testing.T) {
		t.Parallel()
		_, err := aetheris.DecodeToolResult[aetheris.ExtractResult](json.RawMessage(`{}`))
		require.ErrorIs(t, err, aetheris.ErrAPI)
		assert.Contains(t, err.Error(), "tool reported failure")
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()
		_, err := aetheris.DecodeToolResult[aetheris.FormatResult](json.RawMessage(`[1,2]`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, aetheris.ErrAPI)
	})
}

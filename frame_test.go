package aetheris_test

import (
	"encoding/json"
	"testing"

	"github.com/aetheris-dev/aetheris"
	"github.com/stretchr/testify/assert"
)

func TestParseFrameKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want aetheris.FrameKind
	}{
		{"reasoning", aetheris.FrameKindReasoning},
		{"content", aetheris.FrameKindContent},
		{"done", aetheris.FrameKindDone},
		{"error", aetheris.FrameKindError},
		{"usage", aetheris.FrameKindUnknown},
		{"", aetheris.FrameKindUnknown},
		{"Done", aetheris.FrameKindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, aetheris.ParseFrameKind(tt.in))
		})
	}
}

func TestFrameKind_String(t *testing.T) {
	t.Parallel()

	for _, k := range []aetheris.FrameKind{
		aetheris.FrameKindReasoning,
		aetheris.FrameKindContent,
		aetheris.FrameKindDone,
		aetheris.FrameKindError,
	} {
		assert.Equal(t, k, aetheris.ParseFrameKind(k.String()))
	}
	assert.Equal(t, "unknown", aetheris.FrameKindUnknown.String())
}

func TestFrameKind_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, aetheris.FrameKindDone.Terminal())
	assert.True(t, aetheris.FrameKindError.Terminal())
	assert.False(t, aetheris.FrameKindReasoning.Terminal())
	assert.False(t, aetheris.FrameKindContent.Terminal())
	assert.False(t, aetheris.FrameKindUnknown.Terminal())
}

func TestFrame_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, aetheris.FrameKindReasoning, aetheris.FrameReasoning{}.Kind())
	assert.Equal(t, aetheris.FrameKindContent, aetheris.FrameContent{}.Kind())
	assert.Equal(t, aetheris.FrameKindDone, aetheris.FrameDone{}.Kind())
	assert.Equal(t, aetheris.FrameKindError, aetheris.FrameError{}.Kind())
}

func TestDoneRecord(t *testing.T) {
	t.Parallel()

	var rec aetheris.DoneRecord
	err := json.Unmarshal([]byte(`{"type":"done","session_id":"s1","tokens":42}`), &rec)
	assert.NoError(t, err)

	assert.Equal(t, "done", rec.Type())

	var session string
	assert.True(t, rec.Get("session_id", &session))
	assert.Equal(t, "s1", session)

	var tokens int
	assert.True(t, rec.Get("tokens", &tokens))
	assert.Equal(t, 42, tokens)

	var missing string
	assert.False(t, rec.Get("missing", &missing))

	var wrongType int
	assert.False(t, rec.Get("session_id", &wrongType))
}

func TestDoneRecord_TypeOnNil(t *testing.T) {
	t.Parallel()

	var rec aetheris.DoneRecord
	assert.Equal(t, "", rec.Type())
}

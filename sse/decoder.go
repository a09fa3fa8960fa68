package sse

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/aetheris-dev/aetheris"
)

// Decoder reassembles an event stream delivered in arbitrary chunks into
// frames. Complete lines are processed as soon as their terminating newline
// arrives; the trailing incomplete line is held in the buffer until more
// bytes come in. Splitting happens on raw bytes, and a newline byte never
// occurs inside a multi-byte UTF-8 sequence, so characters split across
// chunks are reassembled intact.
//
// Once a done or error frame has been produced the decoder is ended and
// ignores all further input.
//
// A Decoder owns its buffer for the lifetime of one stream and is not safe
// for concurrent use.
type Decoder struct {
	buf    []byte
	ended  bool
	logger *zap.Logger
}

// NewDecoder creates a Decoder. A nil logger disables logging.
func NewDecoder(logger *zap.Logger) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{logger: logger}
}

// Feed appends chunk to the buffer and returns the frames completed by it,
// in stream order.
func (d *Decoder) Feed(chunk []byte) []aetheris.Frame {
	if d.ended {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var frames []aetheris.Frame
	start := 0
	for !d.ended {
		i := bytes.IndexByte(d.buf[start:], '\n')
		if i < 0 {
			break
		}
		line := d.buf[start : start+i]
		start += i + 1

		f, ok := d.parseLine(line)
		if !ok {
			continue
		}
		frames = append(frames, f)
		if f.Kind().Terminal() {
			d.end()
		}
	}

	if !d.ended && start > 0 {
		d.buf = d.buf[:copy(d.buf, d.buf[start:])]
	}
	return frames
}

// Flush signals end of input. Any incomplete trailing line is discarded,
// never dispatched, and the decoder is ended.
func (d *Decoder) Flush() {
	if len(d.buf) > 0 {
		d.logger.Debug("discarding incomplete trailing data", zap.Int("bytes", len(d.buf)))
	}
	d.end()
}

// Ended reports whether the decoder has stopped accepting input.
func (d *Decoder) Ended() bool {
	return d.ended
}

// Buffered returns the number of bytes held awaiting a line terminator.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

func (d *Decoder) end() {
	d.ended = true
	d.buf = nil
}

// parseLine decodes one complete line. It returns false for lines that are
// not data lines, carry malformed JSON, or have an unrecognised type.
func (d *Decoder) parseLine(line []byte) (aetheris.Frame, bool) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	payload, ok := bytes.CutPrefix(line, []byte(dataPrefix))
	if !ok {
		// Blank separators, event:, id: and comment lines carry nothing.
		return nil, false
	}

	var record aetheris.DoneRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		d.logger.Debug("dropping malformed frame", zap.Error(err), zap.ByteString("payload", payload))
		return nil, false
	}

	var typ string
	if !record.Get("type", &typ) {
		return nil, false
	}
	kind := aetheris.ParseFrameKind(typ)
	switch kind {
	case aetheris.FrameKindUnknown:
		d.logger.Debug("ignoring frame of unknown type", zap.String("type", typ))
		return nil, false
	case aetheris.FrameKindDone:
		return aetheris.FrameDone{Record: record}, true
	}

	var text string
	if _, present := record["content"]; present && !record.Get("content", &text) {
		d.logger.Debug("dropping frame with non-string content", zap.Stringer("kind", kind))
		return nil, false
	}

	switch kind {
	case aetheris.FrameKindReasoning:
		return aetheris.FrameReasoning{Text: text}, true
	case aetheris.FrameKindContent:
		return aetheris.FrameContent{Text: text}, true
	default:
		return aetheris.FrameError{Message: text}, true
	}
}

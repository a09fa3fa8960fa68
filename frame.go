// Package aetheris defines the domain types shared by the Aetheris client:
// streamed chat frames, the callbacks that consume them, the REST resource
// types, and persisted theme preferences.
package aetheris

import "encoding/json"

// FrameKind is the wire discriminator carried in a frame's "type" field.
type FrameKind int

const (
	FrameKindUnknown   FrameKind = iota // Unrecognised type; ignored.
	FrameKindReasoning                  // Incremental thinking text.
	FrameKindContent                    // Incremental answer text.
	FrameKindDone                       // Terminal marker for the exchange.
	FrameKindError                      // Fatal error for the exchange.
)

// ParseFrameKind maps a wire type string to a FrameKind. Any string it does
// not recognise yields FrameKindUnknown.
func ParseFrameKind(s string) FrameKind {
	switch s {
	case "reasoning":
		return FrameKindReasoning
	case "content":
		return FrameKindContent
	case "done":
		return FrameKindDone
	case "error":
		return FrameKindError
	default:
		return FrameKindUnknown
	}
}

// String returns the wire name of the kind.
func (k FrameKind) String() string {
	switch k {
	case FrameKindReasoning:
		return "reasoning"
	case FrameKindContent:
		return "content"
	case FrameKindDone:
		return "done"
	case FrameKindError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether a frame of this kind ends the logical exchange.
func (k FrameKind) Terminal() bool {
	return k == FrameKindDone || k == FrameKindError
}

// Frame is a sealed interface representing one decoded stream event.
// The unexported marker method prevents external implementations.
type Frame interface {
	Kind() FrameKind
	frame()
}

// FrameReasoning carries a fragment of the model's reasoning text.
type FrameReasoning struct {
	Text string
}

func (FrameReasoning) Kind() FrameKind { return FrameKindReasoning }
func (FrameReasoning) frame()          {}

// FrameContent carries a fragment of the answer text.
type FrameContent struct {
	Text string
}

func (FrameContent) Kind() FrameKind { return FrameKindContent }
func (FrameContent) frame()          {}

// FrameDone marks the end of the exchange. Record holds the full object as
// received, including any server-defined extra fields.
type FrameDone struct {
	Record DoneRecord
}

func (FrameDone) Kind() FrameKind { return FrameKindDone }
func (FrameDone) frame()          {}

// FrameError carries an application error reported by the server.
type FrameError struct {
	Message string
}

func (FrameError) Kind() FrameKind { return FrameKindError }
func (FrameError) frame()          {}

// Interface compliance checks.
var (
	_ Frame = FrameReasoning{}
	_ Frame = FrameContent{}
	_ Frame = FrameDone{}
	_ Frame = FrameError{}
)

// DoneRecord is the raw object of a done frame, keyed by field name.
type DoneRecord map[string]json.RawMessage

// Type returns the record's "type" field, normally "done".
func (r DoneRecord) Type() string {
	var s string
	_ = r.Get("type", &s)
	return s
}

// Get decodes the named field into v. It returns false when the field is
// absent or cannot be decoded into v.
func (r DoneRecord) Get(key string, v any) bool {
	raw, ok := r[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

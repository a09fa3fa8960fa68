package mock

import "github.com/aetheris-dev/aetheris"

// Interface compliance check.
var _ aetheris.Stream = (*Stream)(nil)

// Stream is a test double for aetheris.Stream.
// NextFn panics when nil to catch missing setup. CloseFn and StateFn are
// nil-safe (no-op and StreamStateStreaming) because test code commonly
// calls defer stream.Close() and these rarely need custom behavior.
type Stream struct {
	NextFn  func() (aetheris.Frame, error)
	StateFn func() aetheris.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (aetheris.Frame, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateStreaming when StateFn is nil.
func (s *Stream) State() aetheris.StreamState {
	if s.StateFn == nil {
		return aetheris.StreamStateStreaming
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

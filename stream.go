package aetheris

import (
	"context"
	"errors"
	"io"
)

// StreamState indicates the current state of a Stream. The only transition
// is Streaming -> Ended, and it is never reversed.
type StreamState int

const (
	StreamStateStreaming StreamState = iota // Frames may still arrive.
	StreamStateEnded                        // Terminal frame seen, or the transport ended.
)

// Stream uses a pull-based iterator pattern. Cancellation flows through the
// context the stream was opened with.
//
// Next returns frames in the order their terminating line boundaries appear
// in the byte stream. It returns io.EOF once the stream has ended, either
// because a done or error frame was delivered or because the transport
// reached end of input. Any other error is a transport failure; the stream
// is Ended afterwards.
type Stream interface {
	Next() (Frame, error)
	State() StreamState
	Close() error
}

// Consume drains s into h. Frames are dispatched in arrival order. A
// transport failure is reported once through OnError and returned.
// Context cancellation is returned without invoking any callback, so a
// consumer that stopped listening hears nothing further.
func Consume(s Stream, h Handlers) error {
	for {
		f, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		if err != nil {
			h.Error(err.Error())
			return err
		}
		h.Dispatch(f)
	}
}

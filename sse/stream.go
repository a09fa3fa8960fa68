package sse

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aetheris-dev/aetheris"
)

// Option configures a stream created by NewStream.
type Option func(*stream)

// WithLogger sets the logger used for dropped frames and transport errors.
func WithLogger(logger *zap.Logger) Option {
	return func(s *stream) { s.logger = logger }
}

// WithReadSize sets the number of bytes requested per transport read.
func WithReadSize(n int) Option {
	return func(s *stream) {
		if n > 0 {
			s.readSize = n
		}
	}
}

// stream implements [aetheris.Stream] by feeding reads from an HTTP response
// body into a Decoder.
type stream struct {
	ctx      context.Context
	body     io.ReadCloser
	dec      *Decoder
	logger   *zap.Logger
	readSize int
	chunk    []byte

	pending []aetheris.Frame
	state   aetheris.StreamState
	err     error // terminal transport error, if any
	closed  bool
}

// Interface compliance check.
var _ aetheris.Stream = (*stream)(nil)

// NewStream returns a Stream reading frames from body. Cancelling ctx ends
// the stream: Next returns the context error and drops undelivered frames.
// The caller must Close the stream to release body.
func NewStream(ctx context.Context, body io.ReadCloser, opts ...Option) aetheris.Stream {
	s := &stream{
		ctx:      ctx,
		body:     body,
		logger:   zap.NewNop(),
		readSize: defaultReadSize,
		state:    aetheris.StreamStateStreaming,
	}
	for _, o := range opts {
		o(s)
	}
	s.dec = NewDecoder(s.logger)
	s.chunk = make([]byte, s.readSize)
	return s
}

// Next returns the next frame. It returns io.EOF once a terminal frame has
// been delivered or the body is exhausted, and ErrStreamEnded after Close.
func (s *stream) Next() (aetheris.Frame, error) {
	if s.closed {
		return nil, fmt.Errorf("sse: %w", aetheris.ErrStreamEnded)
	}
	for {
		if err := s.ctx.Err(); err != nil && s.err == nil && (s.state == aetheris.StreamStateStreaming || len(s.pending) > 0) {
			s.pending = nil
			s.terminate(err)
		}

		if len(s.pending) > 0 {
			f := s.pending[0]
			s.pending = s.pending[1:]
			return f, nil
		}

		if s.state == aetheris.StreamStateEnded {
			if s.err != nil {
				return nil, s.err
			}
			return nil, io.EOF
		}

		n, err := s.body.Read(s.chunk)
		if n > 0 {
			s.pending = append(s.pending, s.dec.Feed(s.chunk[:n])...)
			if s.dec.Ended() {
				s.state = aetheris.StreamStateEnded
			}
		}
		switch {
		case err == nil:
		case s.dec.Ended():
			// A terminal frame arrived with the error; the stream is complete.
			s.logger.Debug("read error after terminal frame", zap.Error(err))
		case errors.Is(err, io.EOF):
			s.dec.Flush()
			s.state = aetheris.StreamStateEnded
		default:
			s.terminate(err)
		}
	}
}

// State returns StreamStateEnded once the stream has ended and every
// decoded frame has been returned by Next.
func (s *stream) State() aetheris.StreamState {
	if len(s.pending) > 0 {
		return aetheris.StreamStateStreaming
	}
	return s.state
}

// Close closes the underlying body.
func (s *stream) Close() error {
	s.closed = true
	s.state = aetheris.StreamStateEnded
	s.pending = nil
	return s.body.Close()
}

// terminate records a terminal transport error. A cancelled context takes
// precedence over the read error it caused.
func (s *stream) terminate(err error) {
	s.dec.Flush()
	s.state = aetheris.StreamStateEnded
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		s.err = fmt.Errorf("sse: %w", ctxErr)
		return
	}
	s.logger.Warn("stream read failed", zap.Error(err))
	s.err = fmt.Errorf("sse: read stream: %w", err)
}

package sse_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aetheris-dev/aetheris"
	"github.com/aetheris-dev/aetheris/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader returns at most size bytes per Read, then err once drained.
type chunkReader struct {
	data   []byte
	size   int
	err    error
	closed bool
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := min(len(p), r.size, len(r.data))
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func (r *chunkReader) Close() error {
	r.closed = true
	return nil
}

func collect(t *testing.T, s aetheris.Stream) []aetheris.Frame {
	t.Helper()
	var frames []aetheris.Frame
	for {
		f, err := s.Next()
		if errors.Is(err, io.EOF) {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, f)
	}
}

func TestStream_ChunkedBody(t *testing.T) {
	t.Parallel()

	for _, size := range []int{1, 2, 3, 7, 64, 4096} {
		body := &chunkReader{data: []byte(transcript), size: size}
		s := sse.NewStream(context.Background(), body)

		rec := &recorder{}
		require.NoError(t, aetheris.Consume(s, rec.handlers()))
		assert.Equal(t, transcriptCalls, rec.calls, "chunk size %d", size)
		assert.Equal(t, aetheris.StreamStateEnded, s.State())
	}
}

func TestStream_SmallReadSize(t *testing.T) {
	t.Parallel()

	body := &chunkReader{data: []byte(transcript), size: 4096}
	s := sse.NewStream(context.Background(), body, sse.WithReadSize(5))

	rec := &recorder{}
	require.NoError(t, aetheris.Consume(s, rec.handlers()))
	assert.Equal(t, transcriptCalls, rec.calls)
}

func TestStream_StopsAtDone(t *testing.T) {
	t.Parallel()

	body := &chunkReader{
		data: []byte("data: {\"type\":\"done\"}\n\ndata: {\"type\":\"content\",\"content\":\"late\"}\n\n"),
		size: 4096,
	}
	s := sse.NewStream(context.Background(), body)

	frames := collect(t, s)

	require.Len(t, frames, 1)
	assert.Equal(t, aetheris.FrameKindDone, frames[0].Kind())

	_, err := s.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStream_EndWithoutDone(t *testing.T) {
	t.Parallel()

	body := &chunkReader{
		data: []byte("data: {\"type\":\"content\",\"content\":\"a\"}\n\ndata: {\"type\":\"content\",\"content\":\"trunc"),
		size: 4096,
	}
	s := sse.NewStream(context.Background(), body)

	rec := &recorder{}
	require.NoError(t, aetheris.Consume(s, rec.handlers()))

	assert.Equal(t, []string{"content:a"}, rec.calls)
	assert.Equal(t, aetheris.StreamStateEnded, s.State())
}

func TestStream_TransportFailure(t *testing.T) {
	t.Parallel()

	reset := errors.New("connection reset by peer")
	body := &chunkReader{
		data: []byte("data: {\"type\":\"content\",\"content\":\"a\"}\n\n"),
		size: 4096,
		err:  reset,
	}
	s := sse.NewStream(context.Background(), body)

	rec := &recorder{}
	err := aetheris.Consume(s, rec.handlers())

	require.ErrorIs(t, err, reset)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "content:a", rec.calls[0])
	assert.True(t, strings.HasPrefix(rec.calls[1], "error:"))
	assert.Contains(t, rec.calls[1], "connection reset by peer")

	// The failure is terminal and sticky.
	_, err = s.Next()
	assert.ErrorIs(t, err, reset)
}

func TestStream_Cancellation(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	s := sse.NewStream(ctx, pr)
	defer s.Close()

	go func() {
		_, _ = pw.Write([]byte("data: {\"type\":\"content\",\"content\":\"first\"}\n"))
	}()

	f, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, aetheris.FrameContent{Text: "first"}, f)

	cancel()

	rec := &recorder{}
	err = aetheris.Consume(s, rec.handlers())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls)
	assert.Equal(t, aetheris.StreamStateEnded, s.State())
}

// tailErrReader returns all of data and err from the same Read call.
type tailErrReader struct {
	data []byte
	err  error
}

func (r *tailErrReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	if len(r.data) == 0 {
		return n, r.err
	}
	return n, nil
}

func (r *tailErrReader) Close() error { return nil }

func TestStream_ReadErrorWithDoneFrame(t *testing.T) {
	t.Parallel()

	body := &tailErrReader{
		data: []byte("data: {\"type\":\"content\",\"content\":\"hi\"}\n\ndata: {\"type\":\"done\"}\n\n"),
		err:  errors.New("connection reset"),
	}
	s := sse.NewStream(context.Background(), body)
	defer s.Close()

	rec := &recorder{}
	err := aetheris.Consume(s, rec.handlers())
	require.NoError(t, err)
	assert.Equal(t, []string{"content:hi", "done:done"}, rec.calls)
	assert.Equal(t, aetheris.StreamStateEnded, s.State())
}

func TestStream_ReadErrorWithoutTerminalFrame(t *testing.T) {
	t.Parallel()

	body := &tailErrReader{
		data: []byte("data: {\"type\":\"content\",\"content\":\"hi\"}\n\n"),
		err:  errors.New("connection reset"),
	}
	s := sse.NewStream(context.Background(), body)
	defer s.Close()

	rec := &recorder{}
	err := aetheris.Consume(s, rec.handlers())
	require.Error(t, err)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "content:hi", rec.calls[0])
	assert.Equal(t, "error:sse: read stream: connection reset", rec.calls[1])
}

func TestStream_Close(t *testing.T) {
	t.Parallel()

	body := &chunkReader{data: []byte(transcript), size: 4096}
	s := sse.NewStream(context.Background(), body)

	require.NoError(t, s.Close())

	assert.True(t, body.closed)
	assert.Equal(t, aetheris.StreamStateEnded, s.State())
	_, err := s.Next()
	assert.ErrorIs(t, err, aetheris.ErrStreamEnded)
}

func TestStream_StateWhilePending(t *testing.T) {
	t.Parallel()

	body := &chunkReader{
		data: []byte("data: {\"type\":\"content\",\"content\":\"a\"}\ndata: {\"type\":\"done\"}\n"),
		size: 4096,
	}
	s := sse.NewStream(context.Background(), body)

	_, err := s.Next()
	require.NoError(t, err)
	// The done frame is decoded but not yet returned.
	assert.Equal(t, aetheris.StreamStateStreaming, s.State())

	_, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, aetheris.StreamStateEnded, s.State())
}

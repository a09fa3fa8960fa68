package aetheris

// Handlers are the consumer callbacks for one stream session. Every field is
// optional; a nil callback is a no-op.
type Handlers struct {
	OnReasoning func(text string)
	OnContent   func(text string)
	OnDone      func(record DoneRecord)
	OnError     func(message string)
}

// Dispatch invokes the callback matching the frame's variant.
func (h Handlers) Dispatch(f Frame) {
	switch f := f.(type) {
	case FrameReasoning:
		if h.OnReasoning != nil {
			h.OnReasoning(f.Text)
		}
	case FrameContent:
		if h.OnContent != nil {
			h.OnContent(f.Text)
		}
	case FrameDone:
		if h.OnDone != nil {
			h.OnDone(f.Record)
		}
	case FrameError:
		h.Error(f.Message)
	}
}

// Error reports message through OnError.
func (h Handlers) Error(message string) {
	if h.OnError != nil {
		h.OnError(message)
	}
}

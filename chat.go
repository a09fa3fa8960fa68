package aetheris

import (
	"context"
	"strings"
	"time"
)

// ContextWindow is the number of prior messages sent with each request.
const ContextWindow = 10

// DefaultSessionID is the session used when none is configured.
const DefaultSessionID = "default"

// ChatMessage is one entry of a conversation as exchanged with the server.
type ChatMessage struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp,omitempty"` // Unix milliseconds.
}

// ChatRequest is the body of a chat call, streaming or not.
type ChatRequest struct {
	Message         string        `json:"message"`
	SessionID       string        `json:"session_id,omitempty"`
	Context         []ChatMessage `json:"context,omitempty"`
	EnableReasoning bool          `json:"enable_reasoning"`
}

// ChatReply is the data of a non-streaming chat response.
type ChatReply struct {
	Reply            string `json:"reply"`
	Intent           string `json:"intent"`
	RecommendedTools []Tool `json:"recommended_tools"`
	SessionID        string `json:"session_id"`
}

// ChatStreamer opens a streaming chat exchange and feeds its frames to h.
// It blocks until the stream ends, fails, or ctx is cancelled.
type ChatStreamer interface {
	StreamChat(ctx context.Context, req ChatRequest, h Handlers) error
}

// ChatService is the request/response side of the chat API.
type ChatService interface {
	Chat(ctx context.Context, req ChatRequest) (ChatReply, error)
	History(ctx context.Context, sessionID string) ([]ChatMessage, error)
	ClearHistory(ctx context.Context, sessionID string) error
	Recommend(ctx context.Context, req ChatRequest) ([]Tool, error)
}

// RecentContext returns at most the last ContextWindow messages.
func RecentContext(msgs []ChatMessage) []ChatMessage {
	if len(msgs) <= ContextWindow {
		return msgs
	}
	return msgs[len(msgs)-ContextWindow:]
}

// Conversation accumulates a chat session on the consumer side: the
// committed transcript plus the reply currently being streamed.
//
// A Conversation is not safe for concurrent use; callers feeding it from a
// stream goroutine must serialize access.
type Conversation struct {
	SessionID string
	Messages  []ChatMessage

	reasoning strings.Builder
	content   strings.Builder
	pending   bool
	err       string
	record    DoneRecord
}

// NewConversation creates an empty Conversation for sessionID.
func NewConversation(sessionID string) *Conversation {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	return &Conversation{SessionID: sessionID}
}

// Ask appends a user message and returns the request to send for it. The
// request context holds the messages that preceded this one.
func (c *Conversation) Ask(text string, reasoning bool) ChatRequest {
	prior := RecentContext(c.Messages)
	ctxMsgs := make([]ChatMessage, len(prior))
	copy(ctxMsgs, prior)

	c.Messages = append(c.Messages, ChatMessage{
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now().UnixMilli(),
	})
	c.reasoning.Reset()
	c.content.Reset()
	c.err = ""
	c.record = nil
	c.pending = true

	return ChatRequest{
		Message:         text,
		SessionID:       c.SessionID,
		Context:         ctxMsgs,
		EnableReasoning: reasoning,
	}
}

// Handlers returns callbacks that fold a stream into the pending reply.
// OnDone and OnError finish the turn.
func (c *Conversation) Handlers() Handlers {
	return Handlers{
		OnReasoning: func(text string) { c.reasoning.WriteString(text) },
		OnContent:   func(text string) { c.content.WriteString(text) },
		OnDone: func(record DoneRecord) {
			c.record = record
			c.Finish()
		},
		OnError: func(message string) {
			c.err = message
			c.Finish()
		},
	}
}

// Apply folds a single frame into the pending reply.
func (c *Conversation) Apply(f Frame) {
	c.Handlers().Dispatch(f)
}

// Fail records a failure that did not arrive as a frame and finishes the
// turn.
func (c *Conversation) Fail(message string) {
	c.err = message
	c.Finish()
}

// Finish commits the pending reply to the transcript. It is idempotent and
// must be called when the transport ends, since a stream may close without
// ever sending a done or error frame.
func (c *Conversation) Finish() {
	if !c.pending {
		return
	}
	c.pending = false
	if c.content.Len() == 0 {
		return
	}
	c.Messages = append(c.Messages, ChatMessage{
		Role:      RoleAssistant,
		Content:   c.content.String(),
		Timestamp: time.Now().UnixMilli(),
	})
}

// Pending reports whether a reply is still being streamed.
func (c *Conversation) Pending() bool { return c.pending }

// Reasoning returns the reasoning text of the latest reply.
func (c *Conversation) Reasoning() string { return c.reasoning.String() }

// Content returns the answer text of the latest reply.
func (c *Conversation) Content() string { return c.content.String() }

// Err returns the error message of the latest reply, if any.
func (c *Conversation) Err() string { return c.err }

// Record returns the done record of the latest reply, or nil.
func (c *Conversation) Record() DoneRecord { return c.record }

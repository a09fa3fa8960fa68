// Package mock provides test doubles for aetheris interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/aetheris-dev/aetheris"
)

// Interface compliance checks.
var (
	_ aetheris.ChatStreamer = (*ChatStreamer)(nil)
	_ aetheris.ChatService  = (*ChatService)(nil)
)

// ChatStreamer is a test double for aetheris.ChatStreamer.
// Set StreamChatFn before calling StreamChat.
type ChatStreamer struct {
	StreamChatFn func(ctx context.Context, req aetheris.ChatRequest, h aetheris.Handlers) error
}

// StreamChat delegates to StreamChatFn.
func (s *ChatStreamer) StreamChat(ctx context.Context, req aetheris.ChatRequest, h aetheris.Handlers) error {
	return s.StreamChatFn(ctx, req, h)
}

// ChatService is a test double for aetheris.ChatService.
type ChatService struct {
	ChatFn         func(ctx context.Context, req aetheris.ChatRequest) (aetheris.ChatReply, error)
	HistoryFn      func(ctx context.Context, sessionID string) ([]aetheris.ChatMessage, error)
	ClearHistoryFn func(ctx context.Context, sessionID string) error
	RecommendFn    func(ctx context.Context, req aetheris.ChatRequest) ([]aetheris.Tool, error)
}

// Chat delegates to ChatFn.
func (s *ChatService) Chat(ctx context.Context, req aetheris.ChatRequest) (aetheris.ChatReply, error) {
	return s.ChatFn(ctx, req)
}

// History delegates to HistoryFn.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]aetheris.ChatMessage, error) {
	return s.HistoryFn(ctx, sessionID)
}

// ClearHistory delegates to ClearHistoryFn.
func (s *ChatService) ClearHistory(ctx context.Context, sessionID string) error {
	return s.ClearHistoryFn(ctx, sessionID)
}

// Recommend delegates to RecommendFn.
func (s *ChatService) Recommend(ctx context.Context, req aetheris.ChatRequest) ([]aetheris.Tool, error) {
	return s.RecommendFn(ctx, req)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/aetheris-dev/aetheris"
	"github.com/aetheris-dev/aetheris/sse"
)

// StreamChat posts req to the streaming chat endpoint and dispatches the
// decoded frames to h until the stream ends. Every failure other than
// cancellation of ctx is reported exactly once through h.OnError and also
// returned. A non-2xx response is reported as "HTTP error! status: N" and
// no body is read.
func (c *Client) StreamChat(ctx context.Context, req aetheris.ChatRequest, h aetheris.Handlers) error {
	if err := req.Validate(); err != nil {
		h.Error(err.Error())
		return fmt.Errorf("api: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		h.Error(err.Error())
		return fmt.Errorf("api: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatStreamPath, bytes.NewReader(body))
	if err != nil {
		h.Error(err.Error())
		return fmt.Errorf("api: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	c.logger.Debug("api stream request",
		zap.String("path", chatStreamPath),
		zap.String("session_id", req.SessionID),
		zap.Int("context", len(req.Context)),
		zap.Bool("reasoning", req.EnableReasoning))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isCanceled(ctx, err) {
			return fmt.Errorf("api: %w", context.Canceled)
		}
		h.Error(err.Error())
		return fmt.Errorf("api: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		c.logger.Warn("api stream rejected", zap.Int("status", resp.StatusCode))
		h.Error(fmt.Sprintf("HTTP error! status: %d", resp.StatusCode))
		return &Error{Status: resp.StatusCode}
	}

	stream := sse.NewStream(ctx, resp.Body, sse.WithLogger(c.logger))
	defer stream.Close()
	return aetheris.Consume(stream, h)
}

// Chat sends a non-streaming chat request.
func (c *Client) Chat(ctx context.Context, req aetheris.ChatRequest) (aetheris.ChatReply, error) {
	if err := req.Validate(); err != nil {
		return aetheris.ChatReply{}, fmt.Errorf("api: %w", err)
	}
	var reply aetheris.ChatReply
	if err := c.postJSON(ctx, chatPath, req, &reply); err != nil {
		return aetheris.ChatReply{}, err
	}
	return reply, nil
}

// History returns the stored messages of a session.
func (c *Client) History(ctx context.Context, sessionID string) ([]aetheris.ChatMessage, error) {
	var msgs []aetheris.ChatMessage
	if err := c.getJSON(ctx, historyPath+url.PathEscape(sessionOrDefault(sessionID)), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ClearHistory deletes the stored messages of a session.
func (c *Client) ClearHistory(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, historyPath+url.PathEscape(sessionOrDefault(sessionID)), "", nil, nil)
}

// Recommend asks the server which tools fit the request message.
func (c *Client) Recommend(ctx context.Context, req aetheris.ChatRequest) ([]aetheris.Tool, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	var out recommendResponse
	if err := c.postJSON(ctx, recommendPath, req, &out); err != nil {
		return nil, err
	}
	return out.RecommendedTools, nil
}

func sessionOrDefault(id string) string {
	if id == "" {
		return aetheris.DefaultSessionID
	}
	return id
}

// Package api implements the Aetheris HTTP API client.
//
// REST calls exchange JSON wrapped in a {code, message, data, timestamp}
// envelope. The streaming chat endpoint answers with a text/event-stream
// body that is decoded by package sse.
package api

import (
	"encoding/json"
	"fmt"

	"github.com/aetheris-dev/aetheris"
)

const (
	defaultBaseURL = "http://localhost:8000/api"

	healthPath     = "/system/health"
	navigationPath = "/system/navigation"

	chatPath       = "/ai/chat"
	chatStreamPath = "/ai/chat/stream"
	historyPath    = "/ai/history/"
	recommendPath  = "/ai/recommend"

	toolsPath = "/tools/"

	codeFormatsPath  = "/tools/code_generator/formats"
	codeGeneratePath = "/tools/code_generator/generate"
	codeBatchPath    = "/tools/code_generator/generate_batch"
	codeTemplatePath = "/tools/code_generator/generate_with_template"
)

// envelope is the uniform response wrapper. Code 0 means success.
type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// errorBody is what the server sends alongside a non-2xx status.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type executeRequest struct {
	Params map[string]any `json:"params"`
	Cache  bool           `json:"cache"`
}

type recommendResponse struct {
	RecommendedTools []aetheris.Tool `json:"recommended_tools"`
}

// Error is returned for a failed API call. Status is set when the server
// answered with a non-2xx HTTP status; otherwise Code holds the non-zero
// envelope code.
type Error struct {
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		if e.Message == "" {
			return fmt.Sprintf("api: HTTP %d", e.Status)
		}
		return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: code %d: %s", e.Code, e.Message)
}

// Unwrap maps the error to aetheris.ErrHTTPStatus or aetheris.ErrAPI.
func (e *Error) Unwrap() error {
	if e.Status != 0 {
		return aetheris.ErrHTTPStatus
	}
	return aetheris.ErrAPI
}

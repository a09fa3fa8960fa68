package json

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aetheris-dev/aetheris"
)

// transcriptVersion is the current envelope version.
const transcriptVersion = 1

// transcript is the v1 wire format for a saved conversation.
type transcript struct {
	Version   int                    `json:"version"`
	SessionID string                 `json:"session_id"`
	SavedAt   time.Time              `json:"saved_at"`
	Messages  []aetheris.ChatMessage `json:"messages"`
}

// SaveTranscript writes the committed messages of conv to path.
func SaveTranscript(path string, conv *aetheris.Conversation) error {
	t := transcript{
		Version:   transcriptVersion,
		SessionID: conv.SessionID,
		SavedAt:   time.Now().UTC(),
		Messages:  conv.Messages,
	}
	if t.Messages == nil {
		t.Messages = []aetheris.ChatMessage{}
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal: %w", err)
	}
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}

// LoadTranscript restores a conversation saved by SaveTranscript.
func LoadTranscript(path string) (*aetheris.Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json: read file: %w", err)
	}
	var t transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("json: unmarshal envelope: %w", err)
	}
	if t.Version != transcriptVersion {
		return nil, fmt.Errorf("json: unsupported envelope version: %d", t.Version)
	}
	conv := aetheris.NewConversation(t.SessionID)
	conv.Messages = t.Messages
	return conv, nil
}

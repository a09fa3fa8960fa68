package aetheris

import (
	"context"
	"encoding/json"
	"fmt"
)

// Tool IDs registered by the server.
const (
	ToolAIChat             = "ai_chat"
	ToolJSONFormatter      = "json_formatter"
	ToolJSONFieldExtractor = "json_field_extractor"
	ToolCodeGenerator      = "code_generator"
)

// Tool describes a tool the server exposes.
type Tool struct {
	ID          string   `json:"tool_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// NavigationNode is one entry of the navigation tree: a category with tool
// children, or a tool leaf.
type NavigationNode struct {
	ID        string           `json:"id"`
	Label     string           `json:"label"`
	Type      string           `json:"type"` // "category" or "tool"
	Icon      string           `json:"icon,omitempty"`
	Component string           `json:"component,omitempty"`
	Children  []NavigationNode `json:"children,omitempty"`
}

// Health is the server health report.
type Health struct {
	Status string         `json:"status"`
	Cache  map[string]any `json:"cache,omitempty"`
}

// SystemService reports server status and the tool navigation tree.
type SystemService interface {
	Health(ctx context.Context) (Health, error)
	Navigation(ctx context.Context) ([]NavigationNode, error)
}

// ToolService lists and runs server-side tools.
type ToolService interface {
	Tools(ctx context.Context) ([]Tool, error)
	Tool(ctx context.Context, id string) (Tool, error)
	ExecuteTool(ctx context.Context, id string, params map[string]any, cache bool) (json.RawMessage, error)
}

// FormatJSONParams builds the params for the json_formatter tool.
func FormatJSONParams(input string, indent int, sortKeys bool) map[string]any {
	return map[string]any{
		"input":     input,
		"indent":    indent,
		"sort_keys": sortKeys,
	}
}

// ExtractFieldsParams builds the params for the json_field_extractor tool.
// outputFormat is "csv" or "txt".
func ExtractFieldsParams(input string, fields []string, outputFormat string) map[string]any {
	if outputFormat == "" {
		outputFormat = "csv"
	}
	return map[string]any{
		"json_input":    input,
		"fields":        fields,
		"output_format": outputFormat,
	}
}

// FormatResult is the output of the json_formatter tool.
type FormatResult struct {
	Success    bool   `json:"success"`
	Formatted  string `json:"formatted"`
	Compressed string `json:"compressed"`
	Stats      struct {
		OriginalLength   int `json:"original_length"`
		FormattedLength  int `json:"formatted_length"`
		CompressedLength int `json:"compressed_length"`
		KeysCount        int `json:"keys_count"`
	} `json:"stats"`
	Error string `json:"error,omitempty"`
}

// ExtractResult is the output of the json_field_extractor tool.
type ExtractResult struct {
	Success      bool             `json:"success"`
	Results      []map[string]any `json:"results"`
	Output       string           `json:"output"`
	OutputFormat string           `json:"output_format"`
	Stats        *struct {
		TotalRecords  int            `json:"total_records"`
		FieldsCount   int            `json:"fields_count"`
		FieldsFound   map[string]int `json:"fields_found"`
		FieldsMissing map[string]int `json:"fields_missing"`
	} `json:"stats"`
	Error string `json:"error,omitempty"`
}

// DecodeToolResult decodes a tool result and turns a reported failure into
// an error wrapping ErrAPI.
func DecodeToolResult[T FormatResult | ExtractResult](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode tool result: %w", err)
	}
	var status struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &status)
	if !status.Success {
		msg := status.Error
		if msg == "" {
			msg = "tool reported failure"
		}
		return v, fmt.Errorf("%s: %w", msg, ErrAPI)
	}
	return v, nil
}

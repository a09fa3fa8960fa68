package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/aetheris-dev/aetheris"
)

// Health reports server status and cache statistics.
func (c *Client) Health(ctx context.Context) (aetheris.Health, error) {
	var h aetheris.Health
	if err := c.getJSON(ctx, healthPath, &h); err != nil {
		return aetheris.Health{}, err
	}
	return h, nil
}

// Navigation returns the tool navigation tree.
func (c *Client) Navigation(ctx context.Context) ([]aetheris.NavigationNode, error) {
	var nodes []aetheris.NavigationNode
	if err := c.getJSON(ctx, navigationPath, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Tools lists every registered tool.
func (c *Client) Tools(ctx context.Context) ([]aetheris.Tool, error) {
	var tools []aetheris.Tool
	if err := c.getJSON(ctx, toolsPath, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// Tool returns a single tool by ID.
func (c *Client) Tool(ctx context.Context, id string) (aetheris.Tool, error) {
	if id == "" {
		return aetheris.Tool{}, fmt.Errorf("api: tool id must not be empty: %w", aetheris.ErrValidation)
	}
	var tool aetheris.Tool
	if err := c.getJSON(ctx, toolsPath+url.PathEscape(id), &tool); err != nil {
		return aetheris.Tool{}, err
	}
	return tool, nil
}

// ExecuteTool runs a tool with params. The result shape is tool specific and
// returned undecoded. cache lets the server answer from its result cache.
func (c *Client) ExecuteTool(ctx context.Context, id string, params map[string]any, cache bool) (json.RawMessage, error) {
	if id == "" {
		return nil, fmt.Errorf("api: tool id must not be empty: %w", aetheris.ErrValidation)
	}
	if params == nil {
		params = map[string]any{}
	}
	var out json.RawMessage
	err := c.postJSON(ctx, toolsPath+url.PathEscape(id)+"/execute", executeRequest{Params: params, Cache: cache}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

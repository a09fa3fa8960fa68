package mock

import (
	"context"
	"encoding/json"

	"github.com/aetheris-dev/aetheris"
)

// Interface compliance checks.
var (
	_ aetheris.ToolService   = (*ToolService)(nil)
	_ aetheris.CodeService   = (*CodeService)(nil)
	_ aetheris.SystemService = (*SystemService)(nil)
)

// ToolService is a test double for aetheris.ToolService.
type ToolService struct {
	ToolsFn       func(ctx context.Context) ([]aetheris.Tool, error)
	ToolFn        func(ctx context.Context, id string) (aetheris.Tool, error)
	ExecuteToolFn func(ctx context.Context, id string, params map[string]any, cache bool) (json.RawMessage, error)
}

// Tools delegates to ToolsFn.
func (s *ToolService) Tools(ctx context.Context) ([]aetheris.Tool, error) {
	return s.ToolsFn(ctx)
}

// Tool delegates to ToolFn.
func (s *ToolService) Tool(ctx context.Context, id string) (aetheris.Tool, error) {
	return s.ToolFn(ctx, id)
}

// ExecuteTool delegates to ExecuteToolFn.
func (s *ToolService) ExecuteTool(ctx context.Context, id string, params map[string]any, cache bool) (json.RawMessage, error) {
	return s.ExecuteToolFn(ctx, id, params, cache)
}

// CodeService is a test double for aetheris.CodeService.
type CodeService struct {
	CodeFormatsFn              func(ctx context.Context) (aetheris.CodeFormats, error)
	GenerateCodeFn             func(ctx context.Context, req aetheris.CodeRequest) (aetheris.CodeResult, error)
	GenerateCodeBatchFn        func(ctx context.Context, req aetheris.BatchCodeRequest) (aetheris.BatchCodeResult, error)
	GenerateCodeWithTemplateFn func(ctx context.Context, req aetheris.CodeRequest, tmpl aetheris.Template) (aetheris.CodeResult, error)
}

// CodeFormats delegates to CodeFormatsFn.
func (s *CodeService) CodeFormats(ctx context.Context) (aetheris.CodeFormats, error) {
	return s.CodeFormatsFn(ctx)
}

// GenerateCode delegates to GenerateCodeFn.
func (s *CodeService) GenerateCode(ctx context.Context, req aetheris.CodeRequest) (aetheris.CodeResult, error) {
	return s.GenerateCodeFn(ctx, req)
}

// GenerateCodeBatch delegates to GenerateCodeBatchFn.
func (s *CodeService) GenerateCodeBatch(ctx context.Context, req aetheris.BatchCodeRequest) (aetheris.BatchCodeResult, error) {
	return s.GenerateCodeBatchFn(ctx, req)
}

// GenerateCodeWithTemplate delegates to GenerateCodeWithTemplateFn.
func (s *CodeService) GenerateCodeWithTemplate(ctx context.Context, req aetheris.CodeRequest, tmpl aetheris.Template) (aetheris.CodeResult, error) {
	return s.GenerateCodeWithTemplateFn(ctx, req, tmpl)
}

// SystemService is a test double for aetheris.SystemService.
type SystemService struct {
	HealthFn     func(ctx context.Context) (aetheris.Health, error)
	NavigationFn func(ctx context.Context) ([]aetheris.NavigationNode, error)
}

// Health delegates to HealthFn.
func (s *SystemService) Health(ctx context.Context) (aetheris.Health, error) {
	return s.HealthFn(ctx)
}

// Navigation delegates to NavigationFn.
func (s *SystemService) Navigation(ctx context.Context) ([]aetheris.NavigationNode, error) {
	return s.NavigationFn(ctx)
}

package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/format"
	"github.com/mhalligan/isodiagram-mcp/internal/render"
)

// --- Input types ---

type GetInfoInput struct {
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
}

type ConvertFormatInput struct {
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	To      string          `json:"to" jsonschema:"Target format: full or compact"`
}

type ValidateDiagramInput struct {
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload to validate"`
}

type RenderASCIIInput struct {
	Diagram    json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	ShowBounds bool            `json:"showBounds,omitempty" jsonschema:"Append the tile bounding box to the legend"`
}

type RenderSummaryInput struct {
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
}

// ValidationResult is the structured answer of validate_diagram.
type ValidationResult struct {
	Valid  bool          `json:"valid"`
	Format format.Format `json:"format"`
	Errors []string      `json:"errors"`
}

// --- Handlers ---

func (t *DiagramTools) GetInfo(_ context.Context, _ *mcp.CallToolRequest, input GetInfoInput) (*mcp.CallToolResult, any, error) {
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	return toolJSON(d.Info())
}

func (t *DiagramTools) ConvertFormat(_ context.Context, _ *mcp.CallToolRequest, input ConvertFormatInput) (*mcp.CallToolResult, any, error) {
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	return diagramResult(d, input.To)
}

func (t *DiagramTools) ValidateDiagram(_ context.Context, _ *mcp.CallToolRequest, input ValidateDiagramInput) (*mcp.CallToolResult, any, error) {
	var payload any
	if err := json.Unmarshal(input.Diagram, &payload); err != nil {
		return toolError("Invalid JSON: %v", err), nil, nil
	}
	errs := format.Validate(payload)
	if errs == nil {
		errs = []string{}
	}
	return toolJSON(ValidationResult{
		Valid:  len(errs) == 0,
		Format: format.Detect(payload),
		Errors: errs,
	})
}

func (t *DiagramTools) RenderASCII(_ context.Context, _ *mcp.CallToolRequest, input RenderASCIIInput) (*mcp.CallToolResult, any, error) {
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	return toolText(render.Render(d.Model(), render.Options{ShowBounds: input.ShowBounds})), nil, nil
}

func (t *DiagramTools) RenderSummary(_ context.Context, _ *mcp.CallToolRequest, input RenderSummaryInput) (*mcp.CallToolResult, any, error) {
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	return toolText(render.Summary(d.Model())), nil, nil
}

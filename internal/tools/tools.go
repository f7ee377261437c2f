// Package tools implements the MCP tool handlers. This is the strict
// tier of the error policy: handlers reject unknown payload formats up
// front, enforce the public length limits, and pre-check identifier
// existence so callers get descriptive errors where the model layer
// would silently no-op.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/diagram"
	"github.com/mhalligan/isodiagram-mcp/internal/format"
)

// Public API length limits, enforced here and nowhere below.
const (
	MaxNodeName       = 100
	MaxDescription    = 1000
	MaxTextBoxContent = 100
)

// DiagramTools holds the stateless diagram tool handlers. Every
// handler is a pure function of its input payload.
type DiagramTools struct{}

// loadDiagram normalizes the raw payload, converting a tool-level
// failure into an error result.
func loadDiagram(raw json.RawMessage) (*diagram.Diagram, *mcp.CallToolResult) {
	if len(raw) == 0 {
		return nil, toolError("Missing required diagram payload")
	}
	d, err := diagram.Load(raw)
	if err != nil {
		return nil, toolError("Invalid diagram: %v", err)
	}
	return d, nil
}

// parseFormat maps the optional format argument, defaulting to full.
func parseFormat(f string) (format.Format, *mcp.CallToolResult) {
	switch f {
	case "", "full":
		return format.FormatFull, nil
	case "compact":
		return format.FormatCompact, nil
	default:
		return "", toolError("Unknown format %q: use full or compact", f)
	}
}

// diagramResult serializes the updated diagram in the requested
// representation.
func diagramResult(d *diagram.Diagram, f string) (*mcp.CallToolResult, any, error) {
	wire, errResult := parseFormat(f)
	if errResult != nil {
		return errResult, nil, nil
	}
	data, err := d.MarshalFormat(wire)
	if err != nil {
		return toolError("Failed to serialize diagram: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// --- Result helpers ---

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(formatStr string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(formatStr, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

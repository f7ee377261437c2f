package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/diagram"
	"github.com/mhalligan/isodiagram-mcp/internal/icons"
)

// --- Input types ---

type CreateDiagramInput struct {
	Title       string `json:"title,omitempty" jsonschema:"Diagram title"`
	Description string `json:"description,omitempty" jsonschema:"Optional diagram description"`
	Format      string `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type AddNodeInput struct {
	Diagram     json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	Name        string          `json:"name" jsonschema:"Node name (max 100 characters)"`
	Icon        string          `json:"icon,omitempty" jsonschema:"Icon id from the catalog (see search_icons)"`
	Description string          `json:"description,omitempty" jsonschema:"Optional node description (max 1000 characters)"`
	X           int             `json:"x" jsonschema:"Tile x coordinate"`
	Y           int             `json:"y" jsonschema:"Tile y coordinate"`
	LabelHeight *float64        `json:"labelHeight,omitempty" jsonschema:"Label height (default 80)"`
	ViewID      string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format      string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type UpdateNodeInput struct {
	Diagram     json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	NodeID      string          `json:"nodeId" jsonschema:"Identifier of the node to update"`
	Name        *string         `json:"name,omitempty" jsonschema:"New name (max 100 characters)"`
	Icon        *string         `json:"icon,omitempty" jsonschema:"New icon id"`
	Description *string         `json:"description,omitempty" jsonschema:"New description (max 1000 characters)"`
	X           *int            `json:"x,omitempty" jsonschema:"New tile x coordinate"`
	Y           *int            `json:"y,omitempty" jsonschema:"New tile y coordinate"`
	LabelHeight *float64        `json:"labelHeight,omitempty" jsonschema:"New label height"`
	ViewID      string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format      string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type RemoveNodeInput struct {
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	NodeID  string          `json:"nodeId" jsonschema:"Identifier of the node to remove"`
	ViewID  string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format  string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type ListNodesInput struct {
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	ViewID  string          `json:"viewId,omitempty" jsonschema:"View whose placements to join (defaults to the primary view)"`
}

// --- Handlers ---

func (t *DiagramTools) CreateDiagram(_ context.Context, _ *mcp.CallToolRequest, input CreateDiagramInput) (*mcp.CallToolResult, any, error) {
	if len([]rune(input.Title)) > MaxNodeName {
		return toolError("Title exceeds %d characters", MaxNodeName), nil, nil
	}
	d := diagram.New(input.Title)
	if input.Description != "" {
		d = d.SetDescription(input.Description)
	}
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) AddNode(_ context.Context, _ *mcp.CallToolRequest, input AddNodeInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Node name is required"), nil, nil
	}
	if len([]rune(input.Name)) > MaxNodeName {
		return toolError("Node name exceeds %d characters", MaxNodeName), nil, nil
	}
	if len([]rune(input.Description)) > MaxDescription {
		return toolError("Node description exceeds %d characters", MaxDescription), nil, nil
	}
	if input.Icon != "" && icons.Get(input.Icon) == nil {
		return toolError("Unknown icon %q: use search_icons to browse the catalog", input.Icon), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	d = d.AddNode(diagram.AddNodeParams{
		Name:        input.Name,
		Icon:        input.Icon,
		Description: input.Description,
		X:           input.X,
		Y:           input.Y,
		LabelHeight: input.LabelHeight,
		ViewID:      input.ViewID,
	})
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) UpdateNode(_ context.Context, _ *mcp.CallToolRequest, input UpdateNodeInput) (*mcp.CallToolResult, any, error) {
	if input.NodeID == "" {
		return toolError("nodeId is required"), nil, nil
	}
	if input.Name != nil && len([]rune(*input.Name)) > MaxNodeName {
		return toolError("Node name exceeds %d characters", MaxNodeName), nil, nil
	}
	if input.Description != nil && len([]rune(*input.Description)) > MaxDescription {
		return toolError("Node description exceeds %d characters", MaxDescription), nil, nil
	}
	if input.Icon != nil && *input.Icon != "" && icons.Get(*input.Icon) == nil {
		return toolError("Unknown icon %q: use search_icons to browse the catalog", *input.Icon), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	if !d.HasNode(input.NodeID) {
		return toolError("Node %q not found", input.NodeID), nil, nil
	}
	d = d.UpdateNode(diagram.UpdateNodeParams{
		NodeID:      input.NodeID,
		Name:        input.Name,
		Icon:        input.Icon,
		Description: input.Description,
		X:           input.X,
		Y:           input.Y,
		LabelHeight: input.LabelHeight,
		ViewID:      input.ViewID,
	})
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) RemoveNode(_ context.Context, _ *mcp.CallToolRequest, input RemoveNodeInput) (*mcp.CallToolResult, any, error) {
	if input.NodeID == "" {
		return toolError("nodeId is required"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	if !d.HasNode(input.NodeID) {
		return toolError("Node %q not found", input.NodeID), nil, nil
	}
	d = d.RemoveNode(input.NodeID, input.ViewID)
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) ListNodes(_ context.Context, _ *mcp.CallToolRequest, input ListNodesInput) (*mcp.CallToolResult, any, error) {
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	nodes := d.ListNodes(input.ViewID)
	return toolJSON(nodes)
}

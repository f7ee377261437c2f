package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/diagram"
	"github.com/mhalligan/isodiagram-mcp/internal/models"
)

// --- Input types ---

type AddRectangleInput struct {
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	FromX   int             `json:"fromX" jsonschema:"First corner tile x"`
	FromY   int             `json:"fromY" jsonschema:"First corner tile y"`
	ToX     int             `json:"toX" jsonschema:"Opposite corner tile x"`
	ToY     int             `json:"toY" jsonschema:"Opposite corner tile y"`
	Color   string          `json:"color,omitempty" jsonschema:"Fill color"`
	ViewID  string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format  string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type RemoveRectangleInput struct {
	Diagram     json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	RectangleID string          `json:"rectangleId" jsonschema:"Identifier of the rectangle to remove"`
	ViewID      string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format      string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type AddTextBoxInput struct {
	Diagram     json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	Content     string          `json:"content" jsonschema:"Text content (max 100 characters)"`
	X           int             `json:"x" jsonschema:"Tile x coordinate"`
	Y           int             `json:"y" jsonschema:"Tile y coordinate"`
	Orientation string          `json:"orientation,omitempty" jsonschema:"Text orientation: X (default) or Y"`
	FontSize    float64         `json:"fontSize,omitempty" jsonschema:"Font size"`
	ViewID      string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format      string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type RemoveTextBoxInput struct {
	Diagram   json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	TextBoxID string          `json:"textBoxId" jsonschema:"Identifier of the text box to remove"`
	ViewID    string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format    string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type SetMetadataInput struct {
	Diagram     json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	Title       *string         `json:"title,omitempty" jsonschema:"New diagram title"`
	Description *string         `json:"description,omitempty" jsonschema:"New diagram description"`
	Format      string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

// --- Handlers ---

func (t *DiagramTools) AddRectangle(_ context.Context, _ *mcp.CallToolRequest, input AddRectangleInput) (*mcp.CallToolResult, any, error) {
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	d = d.AddRectangle(
		models.Tile{X: input.FromX, Y: input.FromY},
		models.Tile{X: input.ToX, Y: input.ToY},
		input.Color,
		input.ViewID,
	)
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) RemoveRectangle(_ context.Context, _ *mcp.CallToolRequest, input RemoveRectangleInput) (*mcp.CallToolResult, any, error) {
	if input.RectangleID == "" {
		return toolError("rectangleId is required"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	if !d.HasRectangle(input.RectangleID, input.ViewID) {
		return toolError("Rectangle %q not found", input.RectangleID), nil, nil
	}
	d = d.RemoveRectangle(input.RectangleID, input.ViewID)
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) AddTextBox(_ context.Context, _ *mcp.CallToolRequest, input AddTextBoxInput) (*mcp.CallToolResult, any, error) {
	if input.Content == "" {
		return toolError("Text content is required"), nil, nil
	}
	if len([]rune(input.Content)) > MaxTextBoxContent {
		return toolError("Text content exceeds %d characters", MaxTextBoxContent), nil, nil
	}
	if input.Orientation != "" && input.Orientation != "X" && input.Orientation != "Y" {
		return toolError("Orientation must be X or Y"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	d = d.AddTextBox(diagram.AddTextBoxParams{
		Content:     input.Content,
		X:           input.X,
		Y:           input.Y,
		Orientation: input.Orientation,
		FontSize:    input.FontSize,
		ViewID:      input.ViewID,
	})
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) RemoveTextBox(_ context.Context, _ *mcp.CallToolRequest, input RemoveTextBoxInput) (*mcp.CallToolResult, any, error) {
	if input.TextBoxID == "" {
		return toolError("textBoxId is required"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	if !d.HasTextBox(input.TextBoxID, input.ViewID) {
		return toolError("Text box %q not found", input.TextBoxID), nil, nil
	}
	d = d.RemoveTextBox(input.TextBoxID, input.ViewID)
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) SetMetadata(_ context.Context, _ *mcp.CallToolRequest, input SetMetadataInput) (*mcp.CallToolResult, any, error) {
	if input.Title == nil && input.Description == nil {
		return toolError("Nothing to update: provide title or description"), nil, nil
	}
	if input.Title != nil && len([]rune(*input.Title)) > MaxNodeName {
		return toolError("Title exceeds %d characters", MaxNodeName), nil, nil
	}
	if input.Description != nil && len([]rune(*input.Description)) > MaxDescription {
		return toolError("Description exceeds %d characters", MaxDescription), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	if input.Title != nil {
		d = d.SetTitle(*input.Title)
	}
	if input.Description != nil {
		d = d.SetDescription(*input.Description)
	}
	return diagramResult(d, input.Format)
}

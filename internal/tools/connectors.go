package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/diagram"
)

// --- Input types ---

type AddConnectorInput struct {
	Diagram   json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	From      string          `json:"from" jsonschema:"Source node id"`
	To        string          `json:"to" jsonschema:"Target node id"`
	Style     string          `json:"style,omitempty" jsonschema:"Line style: SOLID (default), DOTTED or DASHED"`
	LineType  string          `json:"lineType,omitempty" jsonschema:"Line type: SINGLE (default), DOUBLE or DOUBLE_WITH_CIRCLE"`
	Color     string          `json:"color,omitempty" jsonschema:"Connector color"`
	ShowArrow *bool           `json:"showArrow,omitempty" jsonschema:"Draw a direction arrow (default true)"`
	Label     string          `json:"label,omitempty" jsonschema:"Optional connector label"`
	ViewID    string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format    string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type UpdateConnectorInput struct {
	Diagram     json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	ConnectorID string          `json:"connectorId" jsonschema:"Identifier of the connector to update"`
	Style       *string         `json:"style,omitempty" jsonschema:"New line style"`
	LineType    *string         `json:"lineType,omitempty" jsonschema:"New line type"`
	Color       *string         `json:"color,omitempty" jsonschema:"New color"`
	ShowArrow   *bool           `json:"showArrow,omitempty" jsonschema:"Draw a direction arrow"`
	Label       *string         `json:"label,omitempty" jsonschema:"New label"`
	ViewID      string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format      string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type RemoveConnectorInput struct {
	Diagram     json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
	ConnectorID string          `json:"connectorId" jsonschema:"Identifier of the connector to remove"`
	ViewID      string          `json:"viewId,omitempty" jsonschema:"Target view id (defaults to the primary view)"`
	Format      string          `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

// --- Handlers ---

func (t *DiagramTools) AddConnector(_ context.Context, _ *mcp.CallToolRequest, input AddConnectorInput) (*mcp.CallToolResult, any, error) {
	if input.From == "" || input.To == "" {
		return toolError("Both from and to node ids are required"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	// The model layer declines silently when an endpoint has no
	// placement in the view; surface that here.
	if !d.IsPlaced(input.From, input.ViewID) || !d.IsPlaced(input.To, input.ViewID) {
		return toolError("Cannot connect %q to %q: both nodes must be placed in the view", input.From, input.To), nil, nil
	}
	d = d.AddConnector(diagram.AddConnectorParams{
		From:      input.From,
		To:        input.To,
		Style:     input.Style,
		LineType:  input.LineType,
		Color:     input.Color,
		ShowArrow: input.ShowArrow,
		Label:     input.Label,
		ViewID:    input.ViewID,
	})
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) UpdateConnector(_ context.Context, _ *mcp.CallToolRequest, input UpdateConnectorInput) (*mcp.CallToolResult, any, error) {
	if input.ConnectorID == "" {
		return toolError("connectorId is required"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	if !d.HasConnector(input.ConnectorID, input.ViewID) {
		return toolError("Connector %q not found", input.ConnectorID), nil, nil
	}
	d = d.UpdateConnector(diagram.UpdateConnectorParams{
		ConnectorID: input.ConnectorID,
		Style:       input.Style,
		LineType:    input.LineType,
		Color:       input.Color,
		ShowArrow:   input.ShowArrow,
		Label:       input.Label,
		ViewID:      input.ViewID,
	})
	return diagramResult(d, input.Format)
}

func (t *DiagramTools) RemoveConnector(_ context.Context, _ *mcp.CallToolRequest, input RemoveConnectorInput) (*mcp.CallToolResult, any, error) {
	if input.ConnectorID == "" {
		return toolError("connectorId is required"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	if !d.HasConnector(input.ConnectorID, input.ViewID) {
		return toolError("Connector %q not found", input.ConnectorID), nil, nil
	}
	d = d.RemoveConnector(input.ConnectorID, input.ViewID)
	return diagramResult(d, input.Format)
}

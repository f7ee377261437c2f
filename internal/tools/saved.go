package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/format"
	"github.com/mhalligan/isodiagram-mcp/internal/storage"
)

// StorageTools holds the saved-diagram tool handlers. Diagrams are
// addressed by name on every call; no session state is kept.
type StorageTools struct {
	Store *storage.Store
}

// --- Input types ---

type SaveDiagramInput struct {
	Name    string          `json:"name" jsonschema:"Unique name to store the diagram under"`
	Diagram json.RawMessage `json:"diagram" jsonschema:"Diagram payload in full or compact format"`
}

type LoadDiagramInput struct {
	Name   string `json:"name" jsonschema:"Name of the stored diagram"`
	Format string `json:"format,omitempty" jsonschema:"Output format: full (default) or compact"`
}

type DeleteDiagramInput struct {
	Name string `json:"name" jsonschema:"Name of the stored diagram to delete"`
}

// --- Handlers ---

func (t *StorageTools) SaveDiagram(_ context.Context, _ *mcp.CallToolRequest, input SaveDiagramInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Diagram name is required"), nil, nil
	}
	d, errResult := loadDiagram(input.Diagram)
	if errResult != nil {
		return errResult, nil, nil
	}
	// Stored payloads are always canonical full form.
	data, err := d.MarshalFormat(format.FormatFull)
	if err != nil {
		return toolError("Failed to serialize diagram: %v", err), nil, nil
	}
	saved, err := t.Store.Save(input.Name, d.Model().Title, data)
	if err != nil {
		return toolError("Failed to save diagram: %v", err), nil, nil
	}
	saved.Data = nil // the caller already holds the payload
	return toolJSON(saved)
}

func (t *StorageTools) LoadDiagram(_ context.Context, _ *mcp.CallToolRequest, input LoadDiagramInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Diagram name is required"), nil, nil
	}
	saved, err := t.Store.Load(input.Name)
	if errors.Is(err, storage.ErrNotFound) {
		return toolError("No stored diagram named %q", input.Name), nil, nil
	}
	if err != nil {
		return toolError("Failed to load diagram: %v", err), nil, nil
	}
	d, errResult := loadDiagram(saved.Data)
	if errResult != nil {
		return errResult, nil, nil
	}
	return diagramResult(d, input.Format)
}

func (t *StorageTools) ListDiagrams(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	diagrams, err := t.Store.List()
	if err != nil {
		return toolError("Failed to list diagrams: %v", err), nil, nil
	}
	if diagrams == nil {
		diagrams = []storage.SavedDiagram{}
	}
	return toolJSON(diagrams)
}

func (t *StorageTools) DeleteDiagram(_ context.Context, _ *mcp.CallToolRequest, input DeleteDiagramInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("Diagram name is required"), nil, nil
	}
	err := t.Store.Delete(input.Name)
	if errors.Is(err, storage.ErrNotFound) {
		return toolError("No stored diagram named %q", input.Name), nil, nil
	}
	if err != nil {
		return toolError("Failed to delete diagram: %v", err), nil, nil
	}
	return toolText(fmt.Sprintf("Diagram %q permanently deleted.", input.Name)), nil, nil
}

package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/diagram"
	"github.com/mhalligan/isodiagram-mcp/internal/icons"
	"github.com/mhalligan/isodiagram-mcp/internal/models"
	"github.com/mhalligan/isodiagram-mcp/internal/server"
	"github.com/mhalligan/isodiagram-mcp/internal/storage"
	"github.com/mhalligan/isodiagram-mcp/internal/tools"
)

// setupIntegration creates a real MCP server with in-memory transport and returns a connected client session.
func setupIntegration(t *testing.T) (*mcp.ClientSession, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "isodiagram-mcp-integration-*")
	if err != nil {
		t.Fatal(err)
	}

	store, err := storage.Open(dir)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}

	srv := server.New(store)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	_, err = srv.Connect(ctx, serverTransport, nil)
	if err != nil {
		store.Close()
		os.RemoveAll(dir)
		t.Fatalf("server connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		store.Close()
		os.RemoveAll(dir)
		t.Fatalf("client connect: %v", err)
	}

	cleanup := func() {
		session.Close()
		store.Close()
		os.RemoveAll(dir)
	}
	return session, cleanup
}

// callTool is a helper that calls a tool and returns the text content.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) returned error: %s", name, tc.Text)
	}
	return tc.Text
}

// callToolExpectError calls a tool and expects an error response (IsError=true).
func callToolExpectError(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): protocol error: %v", name, err)
	}
	if !result.IsError {
		tc := result.Content[0].(*mcp.TextContent)
		t.Fatalf("CallTool(%s): expected error but got success: %s", name, tc.Text)
	}
	tc := result.Content[0].(*mcp.TextContent)
	return tc.Text
}

// asPayload parses a diagram response so it can be fed back into the
// next tool call's diagram argument.
func asPayload(t *testing.T, text string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("parse diagram payload: %v", err)
	}
	return payload
}

func TestIntegration_ListTools(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	expectedTools := []string{
		"create_diagram", "get_diagram_info", "set_diagram_metadata",
		"add_node", "update_node", "remove_node", "list_nodes",
		"add_connector", "update_connector", "remove_connector",
		"add_rectangle", "remove_rectangle", "add_textbox", "remove_textbox",
		"convert_format", "validate_diagram", "render_ascii", "render_summary",
		"search_icons", "list_icon_categories",
		"save_diagram", "load_diagram", "list_diagrams", "delete_diagram",
	}

	toolNames := make(map[string]bool)
	for _, tool := range result.Tools {
		toolNames[tool.Name] = true
	}

	for _, name := range expectedTools {
		if !toolNames[name] {
			t.Errorf("Missing tool: %s", name)
		}
	}

	if len(result.Tools) != len(expectedTools) {
		t.Errorf("Expected %d tools, got %d", len(expectedTools), len(result.Tools))
	}
}

func TestIntegration_FullWorkflow(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	// Step 1: create_diagram
	text := callTool(t, session, "create_diagram", map[string]any{
		"title":       "Order Flow",
		"description": "Order processing pipeline",
	})
	var m models.Model
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		t.Fatalf("parse create_diagram: %v", err)
	}
	if m.Title != "Order Flow" {
		t.Errorf("title = %q, want %q", m.Title, "Order Flow")
	}
	if len(m.Views) != 1 {
		t.Fatalf("views = %d, want 1", len(m.Views))
	}
	doc := asPayload(t, text)

	// Step 2: add two nodes
	text = callTool(t, session, "add_node", map[string]any{
		"diagram": doc,
		"name":    "API Gateway",
		"icon":    "gateway",
		"x":       0,
		"y":       0,
	})
	doc = asPayload(t, text)
	text = callTool(t, session, "add_node", map[string]any{
		"diagram": doc,
		"name":    "Orders DB",
		"icon":    "database",
		"x":       4,
		"y":       2,
	})
	doc = asPayload(t, text)
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		t.Fatalf("parse add_node: %v", err)
	}
	if len(m.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.Items))
	}
	gatewayID, dbID := m.Items[0].ID, m.Items[1].ID

	// Step 3: list_nodes
	text = callTool(t, session, "list_nodes", map[string]any{"diagram": doc})
	var nodes []diagram.NodeInfo
	if err := json.Unmarshal([]byte(text), &nodes); err != nil {
		t.Fatalf("parse list_nodes: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("list_nodes = %d, want 2", len(nodes))
	}
	if !nodes[0].Placed || nodes[0].Tile == nil {
		t.Errorf("node[0] should be placed: %+v", nodes[0])
	}
	if nodes[1].Tile == nil || nodes[1].Tile.X != 4 || nodes[1].Tile.Y != 2 {
		t.Errorf("node[1] tile = %+v, want (4, 2)", nodes[1].Tile)
	}

	// Step 4: add_connector with a label
	text = callTool(t, session, "add_connector", map[string]any{
		"diagram": doc,
		"from":    gatewayID,
		"to":      dbID,
		"style":   "DASHED",
		"label":   "reads",
	})
	doc = asPayload(t, text)
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		t.Fatalf("parse add_connector: %v", err)
	}
	if len(m.Views[0].Connectors) != 1 {
		t.Fatalf("connectors = %d, want 1", len(m.Views[0].Connectors))
	}
	connectorID := m.Views[0].Connectors[0].ID

	// Step 5: annotations
	text = callTool(t, session, "add_rectangle", map[string]any{
		"diagram": doc,
		"fromX":   -1, "fromY": -1, "toX": 5, "toY": 3,
		"color": "#f0f0f0",
	})
	doc = asPayload(t, text)
	text = callTool(t, session, "add_textbox", map[string]any{
		"diagram": doc,
		"content": "fulfillment path",
		"x":       2, "y": 3,
	})
	doc = asPayload(t, text)

	// Step 6: get_diagram_info
	text = callTool(t, session, "get_diagram_info", map[string]any{"diagram": doc})
	var info diagram.Info
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		t.Fatalf("parse get_diagram_info: %v", err)
	}
	if info.NodeCount != 2 || info.ConnectorCount != 1 || info.RectangleCount != 1 || info.TextBoxCount != 1 {
		t.Errorf("info = %+v", info)
	}

	// Step 7: render_ascii
	text = callTool(t, session, "render_ascii", map[string]any{
		"diagram":    doc,
		"showBounds": true,
	})
	for _, want := range []string{"API Gateway", "Orders DB", "2 nodes, 1 connectors", "bounds"} {
		if !strings.Contains(text, want) {
			t.Errorf("render_ascii missing %q:\n%s", want, text)
		}
	}

	// Step 8: render_summary
	text = callTool(t, session, "render_summary", map[string]any{"diagram": doc})
	if !strings.Contains(text, "# Order Flow") || !strings.Contains(text, "## Nodes (2)") {
		t.Errorf("render_summary:\n%s", text)
	}
	if !strings.Contains(text, "API Gateway → Orders DB (dashed) \"reads\"") {
		t.Errorf("render_summary missing connector line:\n%s", text)
	}

	// Step 9: convert_format to compact and back
	text = callTool(t, session, "convert_format", map[string]any{
		"diagram": doc,
		"to":      "compact",
	})
	compact := asPayload(t, text)
	if compact["t"] != "Order Flow" {
		t.Errorf("compact title = %v", compact["t"])
	}
	meta, ok := compact["_"].(map[string]any)
	if !ok || meta["f"] != "compact" {
		t.Errorf("compact metadata = %v", compact["_"])
	}

	text = callTool(t, session, "convert_format", map[string]any{
		"diagram": compact,
		"to":      "full",
	})
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		t.Fatalf("parse expanded diagram: %v", err)
	}
	if len(m.Items) != 2 || len(m.Views[0].Connectors) != 1 {
		t.Errorf("round trip lost content: %d items, %d connectors", len(m.Items), len(m.Views[0].Connectors))
	}
	if m.Items[0].ID != "item-0" {
		t.Errorf("expanded id = %q, want item-0", m.Items[0].ID)
	}

	// Step 10: validate_diagram on both forms
	text = callTool(t, session, "validate_diagram", map[string]any{"diagram": compact})
	var validation tools.ValidationResult
	if err := json.Unmarshal([]byte(text), &validation); err != nil {
		t.Fatalf("parse validate_diagram: %v", err)
	}
	if !validation.Valid || string(validation.Format) != "compact" {
		t.Errorf("validation = %+v", validation)
	}

	// Step 11: update and remove the connector
	text = callTool(t, session, "update_connector", map[string]any{
		"diagram":     doc,
		"connectorId": connectorID,
		"showArrow":   false,
	})
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		t.Fatalf("parse update_connector: %v", err)
	}
	if arrow := m.Views[0].Connectors[0].ShowArrow; arrow == nil || *arrow {
		t.Error("showArrow not persisted as false")
	}

	// Step 12: save, list, load, delete
	text = callTool(t, session, "save_diagram", map[string]any{
		"name":    "order-flow",
		"diagram": doc,
	})
	var saved storage.SavedDiagram
	if err := json.Unmarshal([]byte(text), &saved); err != nil {
		t.Fatalf("parse save_diagram: %v", err)
	}
	if saved.Name != "order-flow" || saved.Title != "Order Flow" {
		t.Errorf("saved = %+v", saved)
	}

	text = callTool(t, session, "list_diagrams", nil)
	var listing []storage.SavedDiagram
	if err := json.Unmarshal([]byte(text), &listing); err != nil {
		t.Fatalf("parse list_diagrams: %v", err)
	}
	if len(listing) != 1 || listing[0].Name != "order-flow" {
		t.Errorf("listing = %+v", listing)
	}

	text = callTool(t, session, "load_diagram", map[string]any{
		"name":   "order-flow",
		"format": "compact",
	})
	loaded := asPayload(t, text)
	if loaded["t"] != "Order Flow" {
		t.Errorf("loaded compact title = %v", loaded["t"])
	}

	text = callTool(t, session, "delete_diagram", map[string]any{"name": "order-flow"})
	if !strings.Contains(text, "permanently deleted") {
		t.Errorf("expected confirmation, got %q", text)
	}
	callToolExpectError(t, session, "load_diagram", map[string]any{"name": "order-flow"})
}

func TestIntegration_IconCatalog(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	text := callTool(t, session, "search_icons", map[string]any{"query": "database"})
	var matches []icons.Match
	if err := json.Unmarshal([]byte(text), &matches); err != nil {
		t.Fatalf("parse search_icons: %v", err)
	}
	if len(matches) == 0 || matches[0].ID != "database" {
		t.Errorf("matches = %+v", matches)
	}

	text = callTool(t, session, "list_icon_categories", nil)
	var categories []string
	if err := json.Unmarshal([]byte(text), &categories); err != nil {
		t.Fatalf("parse list_icon_categories: %v", err)
	}
	if len(categories) == 0 {
		t.Error("no categories returned")
	}
}

func TestIntegration_ErrorCases(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	text := callTool(t, session, "create_diagram", map[string]any{"title": "Errors"})
	doc := asPayload(t, text)

	// Unknown payload format
	errText := callToolExpectError(t, session, "get_diagram_info", map[string]any{
		"diagram": map[string]any{"foo": 1},
	})
	if !strings.Contains(errText, "unrecognized diagram format") {
		t.Errorf("expected format error, got %q", errText)
	}

	// Missing required node name
	errText = callToolExpectError(t, session, "add_node", map[string]any{
		"diagram": doc,
		"name":    "",
		"x":       0,
		"y":       0,
	})
	if !strings.Contains(errText, "name is required") {
		t.Errorf("expected 'name is required', got %q", errText)
	}

	// Name over the public limit
	errText = callToolExpectError(t, session, "add_node", map[string]any{
		"diagram": doc,
		"name":    strings.Repeat("x", 101),
		"x":       0,
		"y":       0,
	})
	if !strings.Contains(errText, "exceeds 100 characters") {
		t.Errorf("expected length error, got %q", errText)
	}

	// Icon ids must come from the catalog
	errText = callToolExpectError(t, session, "add_node", map[string]any{
		"diagram": doc,
		"name":    "Edge",
		"icon":    "not-an-icon",
		"x":       0,
		"y":       0,
	})
	if !strings.Contains(errText, "Unknown icon") {
		t.Errorf("expected icon error, got %q", errText)
	}

	// Update of a nonexistent node
	errText = callToolExpectError(t, session, "update_node", map[string]any{
		"diagram": doc,
		"nodeId":  "item-ghost",
		"name":    "renamed",
	})
	if !strings.Contains(errText, "not found") {
		t.Errorf("expected 'not found', got %q", errText)
	}

	// Connector between unplaced endpoints
	text = callTool(t, session, "add_node", map[string]any{
		"diagram": doc,
		"name":    "Solo",
		"x":       0,
		"y":       0,
	})
	doc = asPayload(t, text)
	var m models.Model
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		t.Fatal(err)
	}
	errText = callToolExpectError(t, session, "update_node", map[string]any{
		"diagram": doc,
		"nodeId":  m.Items[0].ID,
		"icon":    "not-an-icon",
	})
	if !strings.Contains(errText, "Unknown icon") {
		t.Errorf("expected icon error, got %q", errText)
	}

	errText = callToolExpectError(t, session, "add_connector", map[string]any{
		"diagram": doc,
		"from":    m.Items[0].ID,
		"to":      "item-missing",
	})
	if !strings.Contains(errText, "must be placed") {
		t.Errorf("expected placement error, got %q", errText)
	}

	// Bad output format
	errText = callToolExpectError(t, session, "convert_format", map[string]any{
		"diagram": doc,
		"to":      "yaml",
	})
	if !strings.Contains(errText, "use full or compact") {
		t.Errorf("expected format hint, got %q", errText)
	}

	// Text box orientation
	errText = callToolExpectError(t, session, "add_textbox", map[string]any{
		"diagram":     doc,
		"content":     "note",
		"x":           0,
		"y":           0,
		"orientation": "Z",
	})
	if !strings.Contains(errText, "must be X or Y") {
		t.Errorf("expected orientation error, got %q", errText)
	}

	// Storage misses
	errText = callToolExpectError(t, session, "load_diagram", map[string]any{"name": "ghost"})
	if !strings.Contains(errText, "No stored diagram") {
		t.Errorf("expected storage miss, got %q", errText)
	}
	errText = callToolExpectError(t, session, "delete_diagram", map[string]any{"name": "ghost"})
	if !strings.Contains(errText, "No stored diagram") {
		t.Errorf("expected storage miss, got %q", errText)
	}

	// Icon search requires a query
	errText = callToolExpectError(t, session, "search_icons", map[string]any{"query": ""})
	if !strings.Contains(errText, "query is required") {
		t.Errorf("expected query error, got %q", errText)
	}
}

// validate_diagram reports malformed payloads without rejecting the
// call itself.
func TestIntegration_ValidateReportsErrors(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	text := callTool(t, session, "validate_diagram", map[string]any{
		"diagram": map[string]any{
			"t": strings.Repeat("x", 50),
			"i": []any{[]any{"only-name"}},
			"v": []any{},
		},
	})
	var validation tools.ValidationResult
	if err := json.Unmarshal([]byte(text), &validation); err != nil {
		t.Fatalf("parse validate_diagram: %v", err)
	}
	if validation.Valid {
		t.Error("expected invalid payload")
	}
	if len(validation.Errors) == 0 {
		t.Error("expected validation errors")
	}
}

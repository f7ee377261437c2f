package server

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/storage"
	"github.com/mhalligan/isodiagram-mcp/internal/tools"
)

// addTool registers a tool, inferring the input schema with json.RawMessage
// fields left unconstrained. The default inference maps json.RawMessage (a
// []byte) to an integer array, which would make the server reject the JSON
// object payloads the handlers actually parse.
func addTool[In, Out any](srv *mcp.Server, t *mcp.Tool, h mcp.ToolHandlerFor[In, Out]) {
	s, err := jsonschema.For[In](&jsonschema.ForOptions{
		TypeSchemas: map[reflect.Type]*jsonschema.Schema{
			reflect.TypeFor[json.RawMessage](): {},
		},
	})
	if err != nil {
		panic(fmt.Sprintf("addTool: tool %q: %v", t.Name, err))
	}
	t.InputSchema = s
	mcp.AddTool(srv, t, h)
}

// New creates a fully configured MCP server with all tools registered.
func New(store *storage.Store) *mcp.Server {
	dt := &tools.DiagramTools{}
	it := &tools.IconTools{}
	st := &tools.StorageTools{Store: store}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "isodiagram-mcp",
		Version: "0.1.0",
	}, nil)

	// Diagram lifecycle
	addTool(srv, &mcp.Tool{
		Name:        "create_diagram",
		Description: "Create a new empty diagram with a single default view",
	}, dt.CreateDiagram)

	addTool(srv, &mcp.Tool{
		Name:        "get_diagram_info",
		Description: "Get title, description and node/connector/rectangle/textbox/view counts",
	}, dt.GetInfo)

	addTool(srv, &mcp.Tool{
		Name:        "set_diagram_metadata",
		Description: "Set the diagram title and/or description",
	}, dt.SetMetadata)

	// Nodes
	addTool(srv, &mcp.Tool{
		Name:        "add_node",
		Description: "Add a node to the diagram and place it at tile (x, y)",
	}, dt.AddNode)

	addTool(srv, &mcp.Tool{
		Name:        "update_node",
		Description: "Update a node's name, icon, description or position",
	}, dt.UpdateNode)

	addTool(srv, &mcp.Tool{
		Name:        "remove_node",
		Description: "Remove a node, its placement and every connector attached to it in the view",
	}, dt.RemoveNode)

	addTool(srv, &mcp.Tool{
		Name:        "list_nodes",
		Description: "List all nodes with their positions in the resolved view",
	}, dt.ListNodes)

	// Connectors
	addTool(srv, &mcp.Tool{
		Name:        "add_connector",
		Description: "Connect two placed nodes (style SOLID, DOTTED or DASHED; arrow shown by default)",
	}, dt.AddConnector)

	addTool(srv, &mcp.Tool{
		Name:        "update_connector",
		Description: "Update a connector's style, line type, color, arrow or label",
	}, dt.UpdateConnector)

	addTool(srv, &mcp.Tool{
		Name:        "remove_connector",
		Description: "Remove a connector from the view",
	}, dt.RemoveConnector)

	// Annotations
	addTool(srv, &mcp.Tool{
		Name:        "add_rectangle",
		Description: "Add a rectangular region between two tile corners",
	}, dt.AddRectangle)

	addTool(srv, &mcp.Tool{
		Name:        "remove_rectangle",
		Description: "Remove a rectangle from the view",
	}, dt.RemoveRectangle)

	addTool(srv, &mcp.Tool{
		Name:        "add_textbox",
		Description: "Add a text annotation at a tile position",
	}, dt.AddTextBox)

	addTool(srv, &mcp.Tool{
		Name:        "remove_textbox",
		Description: "Remove a text box from the view",
	}, dt.RemoveTextBox)

	// Formats and rendering
	addTool(srv, &mcp.Tool{
		Name:        "convert_format",
		Description: "Convert a diagram between the full (canonical) and compact (lossy, low-token) formats",
	}, dt.ConvertFormat)

	addTool(srv, &mcp.Tool{
		Name:        "validate_diagram",
		Description: "Structurally validate a diagram payload in either format",
	}, dt.ValidateDiagram)

	addTool(srv, &mcp.Tool{
		Name:        "render_ascii",
		Description: "Render an ASCII preview of the diagram's primary view",
	}, dt.RenderASCII)

	addTool(srv, &mcp.Tool{
		Name:        "render_summary",
		Description: "Render a Markdown summary listing nodes, connectors, rectangles and text boxes",
	}, dt.RenderSummary)

	// Icon catalog
	addTool(srv, &mcp.Tool{
		Name:        "search_icons",
		Description: "Search the icon catalog by name, keyword or category",
	}, it.SearchIcons)

	addTool(srv, &mcp.Tool{
		Name:        "list_icon_categories",
		Description: "List the icon catalog categories",
	}, it.ListCategories)

	// Saved diagrams
	addTool(srv, &mcp.Tool{
		Name:        "save_diagram",
		Description: "Save a diagram under a unique name (overwrites an existing diagram of the same name)",
	}, st.SaveDiagram)

	addTool(srv, &mcp.Tool{
		Name:        "load_diagram",
		Description: "Load a previously saved diagram by name",
	}, st.LoadDiagram)

	addTool(srv, &mcp.Tool{
		Name:        "list_diagrams",
		Description: "List all saved diagrams",
	}, st.ListDiagrams)

	addTool(srv, &mcp.Tool{
		Name:        "delete_diagram",
		Description: "Permanently delete a saved diagram (irreversible)",
	}, st.DeleteDiagram)

	return srv
}

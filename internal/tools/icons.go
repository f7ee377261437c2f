package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mhalligan/isodiagram-mcp/internal/icons"
)

// IconTools holds the icon catalog tool handlers.
type IconTools struct{}

type SearchIconsInput struct {
	Query string `json:"query" jsonschema:"Search text matched against icon ids, names, keywords and categories"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

func (t *IconTools) SearchIcons(_ context.Context, _ *mcp.CallToolRequest, input SearchIconsInput) (*mcp.CallToolResult, any, error) {
	if input.Query == "" {
		return toolError("Search query is required"), nil, nil
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	matches := icons.Search(input.Query, limit)
	if matches == nil {
		matches = []icons.Match{}
	}
	return toolJSON(matches)
}

func (t *IconTools) ListCategories(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(icons.Categories())
}

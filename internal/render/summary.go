package render

import (
	"fmt"
	"strings"

	"github.com/mhalligan/isodiagram-mcp/internal/models"
)

// Summary renders a Markdown-style listing of the primary view. It is
// position-accurate where the ASCII grid is lossy, and denser: every
// node, connector, rectangle and text box appears with its exact tile
// coordinates.
func Summary(m *models.Model) string {
	var b strings.Builder

	title := m.Title
	if title == "" {
		title = "Untitled Diagram"
	}
	fmt.Fprintf(&b, "# %s\n", title)
	if m.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", m.Description)
	}

	view := m.PrimaryView()

	fmt.Fprintf(&b, "\n## Nodes (%d)\n\n", len(m.Items))
	if len(m.Items) == 0 {
		b.WriteString("_none_\n")
	}
	for _, item := range m.Items {
		fmt.Fprintf(&b, "- **%s**", item.Name)
		if view != nil {
			if vi := view.Item(item.ID); vi != nil {
				fmt.Fprintf(&b, " at (%d, %d)", vi.Tile.X, vi.Tile.Y)
			} else {
				b.WriteString(" (unplaced)")
			}
		}
		if item.Icon != "" {
			fmt.Fprintf(&b, " [%s]", item.Icon)
		}
		if item.Description != "" {
			fmt.Fprintf(&b, ": %s", item.Description)
		}
		b.WriteString("\n")
	}

	if view == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "\n## Connectors (%d)\n\n", len(view.Connectors))
	if len(view.Connectors) == 0 {
		b.WriteString("_none_\n")
	}
	for i := range view.Connectors {
		conn := &view.Connectors[i]
		arrow := "→"
		if !conn.Arrow() {
			arrow = "--"
		}
		fmt.Fprintf(&b, "- %s %s %s", itemName(m, conn.From()), arrow, itemName(m, conn.To()))
		if conn.Style != "" && conn.Style != models.StyleSolid {
			fmt.Fprintf(&b, " (%s)", strings.ToLower(conn.Style))
		}
		if conn.Label != "" {
			fmt.Fprintf(&b, " %q", conn.Label)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n## Rectangles (%d)\n\n", len(view.Rectangles))
	if len(view.Rectangles) == 0 {
		b.WriteString("_none_\n")
	}
	for _, r := range view.Rectangles {
		fmt.Fprintf(&b, "- (%d, %d) to (%d, %d)", r.From.X, r.From.Y, r.To.X, r.To.Y)
		if r.Color != "" {
			fmt.Fprintf(&b, " color %s", r.Color)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n## Text Boxes (%d)\n\n", len(view.TextBoxes))
	if len(view.TextBoxes) == 0 {
		b.WriteString("_none_\n")
	}
	for _, t := range view.TextBoxes {
		fmt.Fprintf(&b, "- %q at (%d, %d)", t.Content, t.Tile.X, t.Tile.Y)
		if t.Orientation != "" {
			fmt.Fprintf(&b, " [%s]", t.Orientation)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func itemName(m *models.Model, id string) string {
	if item := m.Item(id); item != nil {
		return item.Name
	}
	return id
}

// Package diagram is the immutable state manager over the canonical
// model. Every mutation deep-copies the wrapped model and returns a
// new Diagram; snapshots handed out earlier are never observably
// altered. Unknown identifiers make mutations safe no-ops rather than
// errors — the strict existence checks live in the tool layer.
package diagram

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mhalligan/isodiagram-mcp/internal/format"
	"github.com/mhalligan/isodiagram-mcp/internal/models"
)

// Diagram wraps one immutable snapshot of a canonical model plus a
// derived scene cache that operations pass through untouched.
type Diagram struct {
	model *models.Model
	scene map[string]any
}

// New creates an empty diagram with a single default view.
func New(title string) *Diagram {
	return &Diagram{
		model: &models.Model{
			Title: title,
			Items: []models.ModelItem{},
			Views: []models.View{{
				ID:         newID("view"),
				Name:       "Main View",
				Items:      []models.ViewItem{},
				Connectors: []models.Connector{},
				Rectangles: []models.Rectangle{},
				TextBoxes:  []models.TextBox{},
			}},
			Icons:  []any{},
			Colors: []any{},
		},
		scene: map[string]any{},
	}
}

// Load normalizes a raw payload (full or compact) into a diagram.
func Load(raw json.RawMessage) (*Diagram, error) {
	m, err := format.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return &Diagram{model: m, scene: map[string]any{}}, nil
}

// Model exposes the wrapped snapshot for read-only use (rendering,
// serialization). Callers must not mutate it.
func (d *Diagram) Model() *models.Model {
	return d.model
}

// MarshalFormat serializes the snapshot in the requested wire
// representation.
func (d *Diagram) MarshalFormat(f format.Format) (json.RawMessage, error) {
	return format.Marshal(d.model.Clone(), f)
}

// Info summarizes the diagram: overall counts plus the primary view's
// connector, rectangle and text box tallies.
type Info struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	NodeCount      int    `json:"nodeCount"`
	ConnectorCount int    `json:"connectorCount"`
	RectangleCount int    `json:"rectangleCount"`
	TextBoxCount   int    `json:"textBoxCount"`
	ViewCount      int    `json:"viewCount"`
}

// Info reports aggregate counts from the canonical state and the
// primary view.
func (d *Diagram) Info() Info {
	info := Info{
		Title:       d.model.Title,
		Description: d.model.Description,
		NodeCount:   len(d.model.Items),
		ViewCount:   len(d.model.Views),
	}
	if v := d.model.PrimaryView(); v != nil {
		info.ConnectorCount = len(v.Connectors)
		info.RectangleCount = len(v.Rectangles)
		info.TextBoxCount = len(v.TextBoxes)
	}
	return info
}

// NodeInfo joins a model item with its placement in one view. Placed
// is false for items without a view placement.
type NodeInfo struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon,omitempty"`
	Description string       `json:"description,omitempty"`
	Placed      bool         `json:"placed"`
	Tile        *models.Tile `json:"tile,omitempty"`
}

// ListNodes projects every model item joined with its placement in
// the resolved view.
func (d *Diagram) ListNodes(viewID string) []NodeInfo {
	view := resolveView(d.model, viewID)
	nodes := make([]NodeInfo, 0, len(d.model.Items))
	for _, item := range d.model.Items {
		n := NodeInfo{
			ID:          item.ID,
			Name:        item.Name,
			Icon:        item.Icon,
			Description: item.Description,
		}
		if view != nil {
			if vi := view.Item(item.ID); vi != nil {
				tile := vi.Tile
				n.Placed = true
				n.Tile = &tile
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// HasNode reports whether a model item with the given id exists.
func (d *Diagram) HasNode(id string) bool {
	return d.model.Item(id) != nil
}

// IsPlaced reports whether the resolved view places the given node.
func (d *Diagram) IsPlaced(nodeID, viewID string) bool {
	view := resolveView(d.model, viewID)
	return view != nil && view.Item(nodeID) != nil
}

// HasConnector reports whether the resolved view holds a connector
// with the given id.
func (d *Diagram) HasConnector(id, viewID string) bool {
	view := resolveView(d.model, viewID)
	return view != nil && findConnector(view, id) >= 0
}

// HasRectangle reports whether the resolved view holds a rectangle
// with the given id.
func (d *Diagram) HasRectangle(id, viewID string) bool {
	view := resolveView(d.model, viewID)
	if view == nil {
		return false
	}
	for i := range view.Rectangles {
		if view.Rectangles[i].ID == id {
			return true
		}
	}
	return false
}

// HasTextBox reports whether the resolved view holds a text box with
// the given id.
func (d *Diagram) HasTextBox(id, viewID string) bool {
	view := resolveView(d.model, viewID)
	if view == nil {
		return false
	}
	for i := range view.TextBoxes {
		if view.TextBoxes[i].ID == id {
			return true
		}
	}
	return false
}

// resolveView returns the named view, or the primary view when viewID
// is empty or unknown.
func resolveView(m *models.Model, viewID string) *models.View {
	if viewID != "" {
		for i := range m.Views {
			if m.Views[i].ID == viewID {
				return &m.Views[i]
			}
		}
	}
	return m.PrimaryView()
}

// next clones the snapshot for a mutation.
func (d *Diagram) next() (*Diagram, *models.Model) {
	m := d.model.Clone()
	return &Diagram{model: m, scene: map[string]any{}}, m
}

func findConnector(v *models.View, id string) int {
	for i := range v.Connectors {
		if v.Connectors[i].ID == id {
			return i
		}
	}
	return -1
}

func newID(kind string) string {
	return kind + "-" + uuid.NewString()
}

// Package models defines the canonical (full form) diagram types. The
// full form is the source of truth; every other representation is
// derived from it.
package models

// Connector line styles.
const (
	StyleSolid  = "SOLID"
	StyleDotted = "DOTTED"
	StyleDashed = "DASHED"
)

// Connector line types.
const (
	LineSingle           = "SINGLE"
	LineDouble           = "DOUBLE"
	LineDoubleWithCircle = "DOUBLE_WITH_CIRCLE"
)

// DefaultLabelHeight is applied to a view item when no labelHeight is
// supplied.
const DefaultLabelHeight = 80

// Tile is a position on the isometric grid.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ModelItem is a diagram entity independent of any view.
type ModelItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// ViewItem is the placement of a ModelItem within one view. Its ID is
// the same identifier as the ModelItem it places.
type ViewItem struct {
	ID          string  `json:"id"`
	Tile        Tile    `json:"tile"`
	LabelHeight float64 `json:"labelHeight,omitempty"`
}

// AnchorRef points a connector endpoint at an item, optionally naming
// an attachment point such as "center".
type AnchorRef struct {
	Item   string `json:"item"`
	Anchor string `json:"anchor,omitempty"`
}

// ConnectorAnchor is one endpoint of a connector.
type ConnectorAnchor struct {
	ID  string    `json:"id"`
	Ref AnchorRef `json:"ref"`
}

// Connector joins two or more anchors. The first anchor is the source
// and the last is the target; anchors in between have no guaranteed
// semantics.
type Connector struct {
	ID        string            `json:"id"`
	Anchors   []ConnectorAnchor `json:"anchors"`
	Style     string            `json:"style,omitempty"`
	LineType  string            `json:"lineType,omitempty"`
	Color     string            `json:"color,omitempty"`
	ShowArrow *bool             `json:"showArrow,omitempty"`
	Label     string            `json:"label,omitempty"`
}

// Arrow reports whether the connector should draw a direction arrow.
// Anything but an explicit false means yes.
func (c *Connector) Arrow() bool {
	return c.ShowArrow == nil || *c.ShowArrow
}

// From returns the source item id, or "" for a malformed connector.
func (c *Connector) From() string {
	if len(c.Anchors) == 0 {
		return ""
	}
	return c.Anchors[0].Ref.Item
}

// To returns the target item id, or "" for a malformed connector.
func (c *Connector) To() string {
	if len(c.Anchors) == 0 {
		return ""
	}
	return c.Anchors[len(c.Anchors)-1].Ref.Item
}

// Rectangle is an axis-aligned region in grid coordinates. From/To are
// stored as given, there is no guarantee From.X < To.X.
type Rectangle struct {
	ID    string `json:"id"`
	From  Tile   `json:"from"`
	To    Tile   `json:"to"`
	Color string `json:"color,omitempty"`
}

// TextBox is a free-standing text annotation.
type TextBox struct {
	ID          string  `json:"id"`
	Tile        Tile    `json:"tile"`
	Content     string  `json:"content"`
	Orientation string  `json:"orientation,omitempty"` // "X" or "Y"
	FontSize    float64 `json:"fontSize,omitempty"`
}

// View is one spatial arrangement of a diagram's items.
type View struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Items      []ViewItem  `json:"items"`
	Connectors []Connector `json:"connectors"`
	Rectangles []Rectangle `json:"rectangles"`
	TextBoxes  []TextBox   `json:"textBoxes"`
}

// Item returns the view item placing the given model item, or nil.
func (v *View) Item(id string) *ViewItem {
	for i := range v.Items {
		if v.Items[i].ID == id {
			return &v.Items[i]
		}
	}
	return nil
}

// Model is the canonical full-form diagram.
type Model struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Items       []ModelItem `json:"items"`
	Views       []View      `json:"views"`
	Icons       []any       `json:"icons"`
	Colors      []any       `json:"colors"`
}

// Item returns the model item with the given id, or nil.
func (m *Model) Item(id string) *ModelItem {
	for i := range m.Items {
		if m.Items[i].ID == id {
			return &m.Items[i]
		}
	}
	return nil
}

// PrimaryView returns the first view, the default target of every
// operation that names no view. Returns nil for a viewless model.
func (m *Model) PrimaryView() *View {
	if len(m.Views) == 0 {
		return nil
	}
	return &m.Views[0]
}

package diagram

import "github.com/mhalligan/isodiagram-mcp/internal/models"

// AddNodeParams describes a node to create and place.
type AddNodeParams struct {
	Name        string
	Icon        string
	Description string
	X, Y        int
	LabelHeight *float64
	ViewID      string
}

// AddNode appends a model item and places it in the resolved view.
// Always succeeds; a missing view id falls back to the primary view.
func (d *Diagram) AddNode(p AddNodeParams) *Diagram {
	nd, m := d.next()
	id := newID("item")
	m.Items = append(m.Items, models.ModelItem{
		ID:          id,
		Name:        p.Name,
		Icon:        p.Icon,
		Description: p.Description,
	})
	labelHeight := float64(models.DefaultLabelHeight)
	if p.LabelHeight != nil {
		labelHeight = *p.LabelHeight
	}
	if view := resolveView(m, p.ViewID); view != nil {
		view.Items = append(view.Items, models.ViewItem{
			ID:          id,
			Tile:        models.Tile{X: p.X, Y: p.Y},
			LabelHeight: labelHeight,
		})
	}
	return nd
}

// UpdateNodeParams carries the patch for an existing node. Nil fields
// are left untouched.
type UpdateNodeParams struct {
	NodeID      string
	Name        *string
	Icon        *string
	Description *string
	X, Y        *int
	LabelHeight *float64
	ViewID      string
}

// UpdateNode patches the model item and, when the resolved view places
// it, the placement. Unknown ids are a no-op.
func (d *Diagram) UpdateNode(p UpdateNodeParams) *Diagram {
	nd, m := d.next()
	if item := m.Item(p.NodeID); item != nil {
		if p.Name != nil {
			item.Name = *p.Name
		}
		if p.Icon != nil {
			item.Icon = *p.Icon
		}
		if p.Description != nil {
			item.Description = *p.Description
		}
	}
	if view := resolveView(m, p.ViewID); view != nil {
		if vi := view.Item(p.NodeID); vi != nil {
			if p.X != nil {
				vi.Tile.X = *p.X
			}
			if p.Y != nil {
				vi.Tile.Y = *p.Y
			}
			if p.LabelHeight != nil {
				vi.LabelHeight = *p.LabelHeight
			}
		}
	}
	return nd
}

// RemoveNode removes the model item, its placement in the resolved
// view, and every connector in that view anchored to it. Connectors in
// other views are left alone. Removing an absent id is a no-op.
func (d *Diagram) RemoveNode(nodeID, viewID string) *Diagram {
	nd, m := d.next()
	for i := range m.Items {
		if m.Items[i].ID == nodeID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			break
		}
	}
	view := resolveView(m, viewID)
	if view == nil {
		return nd
	}
	for i := range view.Items {
		if view.Items[i].ID == nodeID {
			view.Items = append(view.Items[:i], view.Items[i+1:]...)
			break
		}
	}
	kept := view.Connectors[:0]
	for _, conn := range view.Connectors {
		if !anchoredTo(&conn, nodeID) {
			kept = append(kept, conn)
		}
	}
	view.Connectors = kept
	return nd
}

func anchoredTo(c *models.Connector, nodeID string) bool {
	for _, a := range c.Anchors {
		if a.Ref.Item == nodeID {
			return true
		}
	}
	return false
}

// AddConnectorParams describes a two-anchor connector.
type AddConnectorParams struct {
	From      string
	To        string
	Style     string
	LineType  string
	Color     string
	ShowArrow *bool
	Label     string
	ViewID    string
}

// AddConnector creates a connector between two placed nodes. This is
// the one mutation with a precondition: when either endpoint has no
// placement in the resolved view the state is returned unchanged.
func (d *Diagram) AddConnector(p AddConnectorParams) *Diagram {
	view := resolveView(d.model, p.ViewID)
	if view == nil || view.Item(p.From) == nil || view.Item(p.To) == nil {
		return d
	}
	nd, m := d.next()
	view = resolveView(m, p.ViewID)
	style := p.Style
	if style == "" {
		style = models.StyleSolid
	}
	lineType := p.LineType
	if lineType == "" {
		lineType = models.LineSingle
	}
	view.Connectors = append(view.Connectors, models.Connector{
		ID:       newID("connector"),
		Style:    style,
		LineType: lineType,
		Color:    p.Color,
		Label:    p.Label,
		Anchors: []models.ConnectorAnchor{
			{ID: newID("anchor"), Ref: models.AnchorRef{Item: p.From, Anchor: "center"}},
			{ID: newID("anchor"), Ref: models.AnchorRef{Item: p.To, Anchor: "center"}},
		},
		ShowArrow: p.ShowArrow,
	})
	return nd
}

// UpdateConnectorParams carries the patch for an existing connector.
type UpdateConnectorParams struct {
	ConnectorID string
	Style       *string
	LineType    *string
	Color       *string
	ShowArrow   *bool
	Label       *string
	ViewID      string
}

// UpdateConnector patches presentation attributes. Unknown ids are a
// no-op; endpoints are not re-validated here.
func (d *Diagram) UpdateConnector(p UpdateConnectorParams) *Diagram {
	nd, m := d.next()
	view := resolveView(m, p.ViewID)
	if view == nil {
		return nd
	}
	i := findConnector(view, p.ConnectorID)
	if i < 0 {
		return nd
	}
	conn := &view.Connectors[i]
	if p.Style != nil {
		conn.Style = *p.Style
	}
	if p.LineType != nil {
		conn.LineType = *p.LineType
	}
	if p.Color != nil {
		conn.Color = *p.Color
	}
	if p.ShowArrow != nil {
		b := *p.ShowArrow
		conn.ShowArrow = &b
	}
	if p.Label != nil {
		conn.Label = *p.Label
	}
	return nd
}

// RemoveConnector deletes a connector from the resolved view. Unknown
// ids are a no-op.
func (d *Diagram) RemoveConnector(connectorID, viewID string) *Diagram {
	nd, m := d.next()
	view := resolveView(m, viewID)
	if view == nil {
		return nd
	}
	if i := findConnector(view, connectorID); i >= 0 {
		view.Connectors = append(view.Connectors[:i], view.Connectors[i+1:]...)
	}
	return nd
}

// AddRectangle places an axis-aligned region in the resolved view.
// From/To are stored as given, without normalization.
func (d *Diagram) AddRectangle(from, to models.Tile, color, viewID string) *Diagram {
	nd, m := d.next()
	if view := resolveView(m, viewID); view != nil {
		view.Rectangles = append(view.Rectangles, models.Rectangle{
			ID:    newID("rect"),
			From:  from,
			To:    to,
			Color: color,
		})
	}
	return nd
}

// RemoveRectangle deletes a rectangle. Unknown ids are a no-op.
func (d *Diagram) RemoveRectangle(rectangleID, viewID string) *Diagram {
	nd, m := d.next()
	view := resolveView(m, viewID)
	if view == nil {
		return nd
	}
	for i := range view.Rectangles {
		if view.Rectangles[i].ID == rectangleID {
			view.Rectangles = append(view.Rectangles[:i], view.Rectangles[i+1:]...)
			break
		}
	}
	return nd
}

// AddTextBoxParams describes a text annotation.
type AddTextBoxParams struct {
	Content     string
	X, Y        int
	Orientation string
	FontSize    float64
	ViewID      string
}

// AddTextBox places a text annotation in the resolved view.
func (d *Diagram) AddTextBox(p AddTextBoxParams) *Diagram {
	nd, m := d.next()
	if view := resolveView(m, p.ViewID); view != nil {
		orientation := p.Orientation
		if orientation == "" {
			orientation = "X"
		}
		view.TextBoxes = append(view.TextBoxes, models.TextBox{
			ID:          newID("text"),
			Tile:        models.Tile{X: p.X, Y: p.Y},
			Content:     p.Content,
			Orientation: orientation,
			FontSize:    p.FontSize,
		})
	}
	return nd
}

// RemoveTextBox deletes a text box. Unknown ids are a no-op.
func (d *Diagram) RemoveTextBox(textBoxID, viewID string) *Diagram {
	nd, m := d.next()
	view := resolveView(m, viewID)
	if view == nil {
		return nd
	}
	for i := range view.TextBoxes {
		if view.TextBoxes[i].ID == textBoxID {
			view.TextBoxes = append(view.TextBoxes[:i], view.TextBoxes[i+1:]...)
			break
		}
	}
	return nd
}

// SetTitle replaces the model title.
func (d *Diagram) SetTitle(title string) *Diagram {
	nd, m := d.next()
	m.Title = title
	return nd
}

// SetDescription replaces the model description.
func (d *Diagram) SetDescription(description string) *Diagram {
	nd, m := d.next()
	m.Description = description
	return nd
}

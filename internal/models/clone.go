package models

// Deep copies backing the copy-on-write mutation contract: every
// mutation clones first, so previously returned snapshots are never
// observably altered.

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	out := &Model{
		Title:       m.Title,
		Description: m.Description,
		Items:       make([]ModelItem, len(m.Items)),
		Views:       make([]View, len(m.Views)),
		Icons:       append([]any{}, m.Icons...),
		Colors:      append([]any{}, m.Colors...),
	}
	copy(out.Items, m.Items)
	for i := range m.Views {
		out.Views[i] = m.Views[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the view.
func (v View) Clone() View {
	out := View{
		ID:         v.ID,
		Name:       v.Name,
		Items:      make([]ViewItem, len(v.Items)),
		Connectors: make([]Connector, len(v.Connectors)),
		Rectangles: make([]Rectangle, len(v.Rectangles)),
		TextBoxes:  make([]TextBox, len(v.TextBoxes)),
	}
	copy(out.Items, v.Items)
	copy(out.Rectangles, v.Rectangles)
	copy(out.TextBoxes, v.TextBoxes)
	for i := range v.Connectors {
		out.Connectors[i] = v.Connectors[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the connector.
func (c Connector) Clone() Connector {
	out := c
	out.Anchors = make([]ConnectorAnchor, len(c.Anchors))
	copy(out.Anchors, c.Anchors)
	if c.ShowArrow != nil {
		b := *c.ShowArrow
		out.ShowArrow = &b
	}
	return out
}

// Package format translates between the two wire representations of a
// diagram: the canonical full form (identifier-addressed, the source
// of truth) and the compact form (position-addressed, size-minimized,
// lossy). It also hosts format detection and the structural validators.
package format

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mhalligan/isodiagram-mcp/internal/models"
)

// Format identifies which wire representation a payload uses.
type Format string

const (
	FormatFull    Format = "full"
	FormatCompact Format = "compact"
	FormatUnknown Format = "unknown"
)

// CompactVersion is stamped into the `_` metadata of emitted compact
// payloads.
const CompactVersion = "1.0"

// Length caps of the compact encoding.
const (
	MaxCompactTitle       = 40
	MaxCompactName        = 30
	MaxCompactDescription = 100
)

// ErrUnknownFormat is returned when a payload is neither full nor
// compact. Entry points must check detection before doing anything
// else with a payload.
var ErrUnknownFormat = errors.New("unrecognized diagram format: expected full (title/items/views) or compact (t/i/v)")

// Compact is the position-addressed encoding. Item identity is purely
// positional: the Nth entry of Items is referenced as index N from
// every position and connection tuple.
type Compact struct {
	Title string        `json:"t"`
	Items []CompactItem `json:"i"`
	Views []CompactView `json:"v"`
	Meta  *CompactMeta  `json:"_,omitempty"`
}

// CompactMeta is the `_` metadata tag marking a payload as compact.
type CompactMeta struct {
	Format  string `json:"f"`
	Version string `json:"v"`
}

// CompactItem encodes as the tuple [name, icon, description].
type CompactItem struct {
	Name        string
	Icon        string
	Description string
}

// CompactPosition encodes as the tuple [itemIndex, x, y].
type CompactPosition struct {
	Item int
	X    int
	Y    int
}

// CompactConnection encodes as the pair [fromIndex, toIndex]. Extended
// input tuples [from, to, style, arrow] are accepted but never
// emitted.
type CompactConnection struct {
	From  int
	To    int
	Style string
	Arrow *bool
}

// CompactView encodes as the tuple [positions, connections].
type CompactView struct {
	Positions   []CompactPosition
	Connections []CompactConnection
}

func (i CompactItem) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{i.Name, i.Icon, i.Description})
}

func (i *CompactItem) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("compact item: %w", err)
	}
	if len(tuple) > 0 {
		i.Name = tuple[0]
	}
	if len(tuple) > 1 {
		i.Icon = tuple[1]
	}
	if len(tuple) > 2 {
		i.Description = tuple[2]
	}
	return nil
}

func (p CompactPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{p.Item, p.X, p.Y})
}

func (p *CompactPosition) UnmarshalJSON(data []byte) error {
	var tuple [3]int
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("compact position: %w", err)
	}
	p.Item, p.X, p.Y = tuple[0], tuple[1], tuple[2]
	return nil
}

func (c CompactConnection) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.From, c.To})
}

func (c *CompactConnection) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("compact connection: %w", err)
	}
	if len(tuple) < 2 {
		return fmt.Errorf("compact connection: want at least [from, to], got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &c.From); err != nil {
		return fmt.Errorf("compact connection from: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &c.To); err != nil {
		return fmt.Errorf("compact connection to: %w", err)
	}
	if len(tuple) > 2 {
		if err := json.Unmarshal(tuple[2], &c.Style); err != nil {
			return fmt.Errorf("compact connection style: %w", err)
		}
	}
	if len(tuple) > 3 {
		var arrow bool
		if err := json.Unmarshal(tuple[3], &arrow); err != nil {
			return fmt.Errorf("compact connection arrow: %w", err)
		}
		c.Arrow = &arrow
	}
	return nil
}

func (v CompactView) MarshalJSON() ([]byte, error) {
	positions := v.Positions
	if positions == nil {
		positions = []CompactPosition{}
	}
	connections := v.Connections
	if connections == nil {
		connections = []CompactConnection{}
	}
	return json.Marshal([2]any{positions, connections})
}

func (v *CompactView) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("compact view: %w", err)
	}
	if len(tuple) > 0 {
		if err := json.Unmarshal(tuple[0], &v.Positions); err != nil {
			return fmt.Errorf("compact view positions: %w", err)
		}
	}
	if len(tuple) > 1 {
		if err := json.Unmarshal(tuple[1], &v.Connections); err != nil {
			return fmt.Errorf("compact view connections: %w", err)
		}
	}
	return nil
}

// Detect classifies a decoded JSON payload. Compact is recognized by
// the explicit `_` metadata tag or by the structural fingerprint of
// carrying t/i/v fields with array-typed i and v; full by the presence
// of title, items and views.
func Detect(payload any) Format {
	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return FormatUnknown
	}
	if meta, ok := obj["_"].(map[string]any); ok {
		if f, _ := meta["f"].(string); f == "compact" {
			return FormatCompact
		}
	}
	_, hasT := obj["t"]
	_, iIsArray := obj["i"].([]any)
	_, vIsArray := obj["v"].([]any)
	if hasT && iIsArray && vIsArray {
		return FormatCompact
	}
	_, hasTitle := obj["title"]
	_, hasItems := obj["items"]
	_, hasViews := obj["views"]
	if hasTitle && hasItems && hasViews {
		return FormatFull
	}
	return FormatUnknown
}

// DetectRaw decodes raw JSON and classifies it. Undecodable input is
// unknown.
func DetectRaw(raw json.RawMessage) Format {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return FormatUnknown
	}
	return Detect(payload)
}

// syntheticID is the position-based pseudo-identifier scheme used when
// expanding compact payloads. Compact never round-trips identifiers,
// so these are regenerated on every compact-to-full pass.
func syntheticID(index int) string {
	return fmt.Sprintf("item-%d", index)
}

func viewName(index int) string {
	if index == 0 {
		return "Main View"
	}
	return fmt.Sprintf("View %d", index+1)
}

// ToFull expands a compact diagram into a canonical model. Item N
// becomes a ModelItem with the synthetic identifier item-N, positions
// become view items, and connection pairs become two-anchor connectors
// with default presentation (SOLID, SINGLE, arrow shown).
func ToFull(c *Compact) *models.Model {
	m := &models.Model{
		Title:  c.Title,
		Items:  make([]models.ModelItem, len(c.Items)),
		Views:  make([]models.View, 0, len(c.Views)),
		Icons:  []any{},
		Colors: []any{},
	}
	for n, item := range c.Items {
		m.Items[n] = models.ModelItem{
			ID:          syntheticID(n),
			Name:        item.Name,
			Icon:        item.Icon,
			Description: item.Description,
		}
	}
	for vi, cv := range c.Views {
		view := models.View{
			ID:         fmt.Sprintf("view-%d", vi),
			Name:       viewName(vi),
			Items:      make([]models.ViewItem, len(cv.Positions)),
			Connectors: make([]models.Connector, len(cv.Connections)),
			Rectangles: []models.Rectangle{},
			TextBoxes:  []models.TextBox{},
		}
		for pi, pos := range cv.Positions {
			view.Items[pi] = models.ViewItem{
				ID:          syntheticID(pos.Item),
				Tile:        models.Tile{X: pos.X, Y: pos.Y},
				LabelHeight: models.DefaultLabelHeight,
			}
		}
		for ci, conn := range cv.Connections {
			style := conn.Style
			if style == "" {
				style = models.StyleSolid
			}
			view.Connectors[ci] = models.Connector{
				ID:       fmt.Sprintf("connector-%d", ci),
				Style:    style,
				LineType: models.LineSingle,
				Anchors: []models.ConnectorAnchor{
					{ID: fmt.Sprintf("anchor-%d-0", ci), Ref: models.AnchorRef{Item: syntheticID(conn.From), Anchor: "center"}},
					{ID: fmt.Sprintf("anchor-%d-1", ci), Ref: models.AnchorRef{Item: syntheticID(conn.To), Anchor: "center"}},
				},
				ShowArrow: conn.Arrow,
			}
		}
		m.Views = append(m.Views, view)
	}
	if len(m.Views) == 0 {
		m.Views = append(m.Views, models.View{
			ID:         "view-0",
			Name:       viewName(0),
			Items:      []models.ViewItem{},
			Connectors: []models.Connector{},
			Rectangles: []models.Rectangle{},
			TextBoxes:  []models.TextBox{},
		})
	}
	return m
}

// ToCompact projects a canonical model into the compact encoding.
// What the compact form cannot express is dropped: identifiers,
// connector presentation beyond the from/to pair, rectangles and text
// boxes. The projection keys everything off the current items array
// order, which is what the compact form actually encodes.
func ToCompact(m *models.Model) *Compact {
	position := make(map[string]int, len(m.Items))
	for n, item := range m.Items {
		position[item.ID] = n
	}

	c := &Compact{
		Title: truncate(m.Title, MaxCompactTitle),
		Items: make([]CompactItem, len(m.Items)),
		Views: make([]CompactView, 0, len(m.Views)),
		Meta:  &CompactMeta{Format: "compact", Version: CompactVersion},
	}
	for n, item := range m.Items {
		c.Items[n] = CompactItem{
			Name:        truncate(item.Name, MaxCompactName),
			Icon:        item.Icon,
			Description: truncate(item.Description, MaxCompactDescription),
		}
	}
	for _, view := range m.Views {
		cv := CompactView{
			Positions:   []CompactPosition{},
			Connections: []CompactConnection{},
		}
		for _, vi := range view.Items {
			idx, ok := position[vi.ID]
			if !ok {
				continue // dangling placement, not representable
			}
			cv.Positions = append(cv.Positions, CompactPosition{Item: idx, X: vi.Tile.X, Y: vi.Tile.Y})
		}
		for _, conn := range view.Connectors {
			from, okFrom := position[conn.From()]
			to, okTo := position[conn.To()]
			if !okFrom || !okTo {
				continue
			}
			cv.Connections = append(cv.Connections, CompactConnection{From: from, To: to})
		}
		c.Views = append(c.Views, cv)
	}
	if len(c.Views) == 0 {
		c.Views = append(c.Views, CompactView{
			Positions:   []CompactPosition{},
			Connections: []CompactConnection{},
		})
	}
	return c
}

// Normalize decodes a raw payload in either representation and returns
// the canonical model, guaranteeing at least one view. Unknown formats
// are rejected with ErrUnknownFormat.
func Normalize(raw json.RawMessage) (*models.Model, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse diagram: %w", err)
	}
	switch Detect(payload) {
	case FormatCompact:
		var c Compact
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse compact diagram: %w", err)
		}
		return ToFull(&c), nil
	case FormatFull:
		var m models.Model
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("parse full diagram: %w", err)
		}
		ensureShape(&m)
		return &m, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Marshal serializes a model in the requested representation.
func Marshal(m *models.Model, f Format) (json.RawMessage, error) {
	switch f {
	case FormatCompact:
		return json.Marshal(ToCompact(m))
	case FormatFull, "":
		ensureShape(m)
		return json.Marshal(m)
	default:
		return nil, fmt.Errorf("cannot serialize to format %q", f)
	}
}

// ensureShape upholds the invariants the full form promises on the
// wire: at least one view and array-typed collections (never null).
func ensureShape(m *models.Model) {
	if m.Items == nil {
		m.Items = []models.ModelItem{}
	}
	if m.Icons == nil {
		m.Icons = []any{}
	}
	if m.Colors == nil {
		m.Colors = []any{}
	}
	if len(m.Views) == 0 {
		m.Views = []models.View{{
			ID:   "view-0",
			Name: viewName(0),
		}}
	}
	for i := range m.Views {
		v := &m.Views[i]
		if v.Items == nil {
			v.Items = []models.ViewItem{}
		}
		if v.Connectors == nil {
			v.Connectors = []models.Connector{}
		}
		if v.Rectangles == nil {
			v.Rectangles = []models.Rectangle{}
		}
		if v.TextBoxes == nil {
			v.TextBoxes = []models.TextBox{}
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

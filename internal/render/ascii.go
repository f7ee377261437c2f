// Package render projects a canonical diagram model onto a 2D text
// canvas. The projection is deterministic: the same model always
// yields the same string.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mhalligan/isodiagram-mcp/internal/models"
)

// Grid geometry. Each grid unit maps to a 16x3 character cell, wide
// enough for a 12-character name plus a short icon label inside a
// bordered box. The bounding box of placed items is padded by 2 grid
// units on every side.
const (
	cellWidth  = 16
	cellHeight = 3
	padding    = 2

	maxNameWidth = 12
	maxIconWidth = 10
	minInner     = 4
)

// Options controls optional renderer output.
type Options struct {
	// ShowBounds appends the tile-coordinate bounding box to the
	// legend line.
	ShowBounds bool
}

// lineGlyphs are the characters the defensive write rule treats as
// overwritable. Anything else on the canvas (letters, borders already
// carrying text, arrows) is never overwritten by a later pass.
const lineGlyphs = "─│┄┆·┌┐└┘"

type canvas struct {
	cells  [][]rune
	width  int
	height int
}

func newCanvas(width, height int) *canvas {
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &canvas{cells: cells, width: width, height: height}
}

// wideSkip marks the trailing cell consumed by a double-width rune.
// lines() drops it so the emitted row occupies exactly one display
// column per cell.
const wideSkip = rune(0)

// set writes r at (x, y) unless the cell already holds protected
// content, reporting whether the write happened. Connectors are drawn
// before nodes so that the node pass may reclaim line glyphs but never
// letters.
func (c *canvas) set(x, y int, r rune) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	cur := c.cells[y][x]
	if cur != ' ' && !strings.ContainsRune(lineGlyphs, cur) {
		return false
	}
	c.cells[y][x] = r
	return true
}

// setText writes a string left-to-right under the same write rule,
// advancing by display width so wide runes stay aligned.
func (c *canvas) setText(x, y int, s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if c.set(x, y, r) && w == 2 {
			c.set(x+1, y, wideSkip)
		}
		x += w
	}
}

func (c *canvas) lines() []string {
	out := make([]string, c.height)
	var b strings.Builder
	for y, row := range c.cells {
		b.Reset()
		for _, r := range row {
			if r != wideSkip {
				b.WriteRune(r)
			}
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Render projects the model's primary view onto a framed character
// grid: connectors first as single-bend Manhattan paths, then nodes as
// bordered boxes, then the frame with title and legend.
func Render(m *models.Model, opts Options) string {
	view := m.PrimaryView()
	if view == nil || len(view.Items) == 0 {
		return renderEmpty(m)
	}

	minX, minY := view.Items[0].Tile.X, view.Items[0].Tile.Y
	maxX, maxY := minX, minY
	for _, vi := range view.Items[1:] {
		minX = min(minX, vi.Tile.X)
		maxX = max(maxX, vi.Tile.X)
		minY = min(minY, vi.Tile.Y)
		maxY = max(maxY, vi.Tile.Y)
	}
	left, top := minX-padding, minY-padding
	right, bottom := maxX+padding, maxY+padding

	c := newCanvas((right-left+1)*cellWidth, (bottom-top+1)*cellHeight)
	center := func(t models.Tile) (int, int) {
		return (t.X-left)*cellWidth + cellWidth/2, (t.Y-top)*cellHeight + cellHeight/2
	}

	for i := range view.Connectors {
		drawConnector(c, m, view, &view.Connectors[i], center)
	}
	for i := range view.Items {
		drawNode(c, m, &view.Items[i], center)
	}

	legend := fmt.Sprintf("%d nodes, %d connectors", len(view.Items), len(view.Connectors))
	if opts.ShowBounds {
		legend += fmt.Sprintf(", bounds (%d,%d)..(%d,%d)", minX, minY, maxX, maxY)
	}
	return frame(m.Title, legend, c.lines(), c.width)
}

func renderEmpty(m *models.Model) string {
	const inner = 40
	title := runewidth.Truncate(m.Title, inner, "…")
	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", inner+2) + "┐\n")
	b.WriteString("│ " + runewidth.FillRight(title, inner) + " │\n")
	b.WriteString("│ " + runewidth.FillRight("(empty diagram, 0 nodes)", inner) + " │\n")
	b.WriteString("└" + strings.Repeat("─", inner+2) + "┘\n")
	return b.String()
}

// styleGlyphs maps a connector style to its horizontal and vertical
// segment glyphs.
func styleGlyphs(style string) (rune, rune) {
	switch style {
	case models.StyleDashed:
		return '┄', '┆'
	case models.StyleDotted:
		return '·', '·'
	default:
		return '─', '│'
	}
}

// drawConnector routes a single-bend orthogonal path between the
// centers of the two endpoint cells: horizontal to the midpoint
// column, vertical, then horizontal into the target. Connectors whose
// endpoints are not placed in the view are skipped.
func drawConnector(c *canvas, m *models.Model, view *models.View, conn *models.Connector, center func(models.Tile) (int, int)) {
	src := view.Item(conn.From())
	dst := view.Item(conn.To())
	if src == nil || dst == nil {
		return
	}
	sx, sy := center(src.Tile)
	tx, ty := center(dst.Tile)
	h, v := styleGlyphs(conn.Style)
	midX := (sx + tx) / 2

	for x := min(sx, midX); x <= max(sx, midX); x++ {
		c.set(x, sy, h)
	}
	for y := min(sy, ty); y <= max(sy, ty); y++ {
		c.set(midX, y, v)
	}
	for x := min(midX, tx); x <= max(midX, tx); x++ {
		c.set(x, ty, h)
	}
	if sy != ty && sx != tx {
		c.set(midX, sy, cornerAt(sx, midX, sy, ty, true))
		c.set(midX, ty, cornerAt(tx, midX, ty, sy, false))
	}
	if conn.Arrow() {
		drawArrow(c, m, dst, sx, sy, tx, ty)
	}
	if conn.Label != "" {
		c.setText(midX+2, (sy+ty)/2, conn.Label)
	}
}

// cornerAt picks the box-drawing corner for a turn at the bend column.
// farX is the horizontal end of the adjoining segment, otherY the
// vertical end; entering marks the upper turn (horizontal then
// vertical) versus the lower one.
func cornerAt(farX, bendX, y, otherY int, entering bool) rune {
	fromLeft := farX < bendX
	goingDown := otherY > y
	if entering {
		switch {
		case fromLeft && goingDown:
			return '┐'
		case fromLeft && !goingDown:
			return '┘'
		case !fromLeft && goingDown:
			return '┌'
		default:
			return '└'
		}
	}
	// leaving the bend column toward the target
	toRight := farX > bendX
	cameFromAbove := otherY < y
	switch {
	case cameFromAbove && toRight:
		return '└'
	case cameFromAbove && !toRight:
		return '┘'
	case !cameFromAbove && toRight:
		return '┌'
	default:
		return '┐'
	}
}

// drawArrow places one directional glyph adjacent to the target node
// box, horizontal arrows taking precedence whenever the path moves
// horizontally at all.
func drawArrow(c *canvas, m *models.Model, dst *models.ViewItem, sx, sy, tx, ty int) {
	halfW := boxWidth(m, dst.ID)/2 + 1
	switch {
	case tx > sx:
		c.set(tx-halfW, ty, '▶')
	case tx < sx:
		c.set(tx+halfW, ty, '◀')
	case ty > sy:
		c.set(tx, ty-2, '▼')
	case ty < sy:
		c.set(tx, ty+2, '▲')
	}
}

// nodeLabels returns the truncated name and icon label for an item.
func nodeLabels(m *models.Model, id string) (string, string) {
	item := m.Item(id)
	if item == nil {
		return id, ""
	}
	name := runewidth.Truncate(item.Name, maxNameWidth, "")
	icon := ""
	if item.Icon != "" {
		icon = "[" + runewidth.Truncate(item.Icon, maxIconWidth, "") + "]"
	}
	return name, icon
}

// boxWidth is the total border-to-border width of a node box.
func boxWidth(m *models.Model, id string) int {
	name, icon := nodeLabels(m, id)
	inner := max(minInner, max(runewidth.StringWidth(name), runewidth.StringWidth(icon)))
	return inner + 4 // one space of padding and a border on each side
}

// drawNode draws a bordered 3-row box centered on the item's cell,
// name in the middle row and the icon label inset into the top border.
func drawNode(c *canvas, m *models.Model, vi *models.ViewItem, center func(models.Tile) (int, int)) {
	cx, cy := center(vi.Tile)
	name, icon := nodeLabels(m, vi.ID)
	w := boxWidth(m, vi.ID)
	x0 := cx - w/2

	top := "┌" + strings.Repeat("─", w-2) + "┐"
	if icon != "" {
		top = "┌" + icon + strings.Repeat("─", w-2-runewidth.StringWidth(icon)) + "┐"
	}
	mid := "│ " + centerPad(name, w-4) + " │"
	bot := "└" + strings.Repeat("─", w-2) + "┘"

	c.setText(x0, cy-1, top)
	c.setText(x0, cy, mid)
	c.setText(x0, cy+1, bot)
}

func centerPad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	leftPad := gap / 2
	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", gap-leftPad)
}

// frame wraps the grid in a border with the title on top and the
// legend below.
func frame(title, legend string, rows []string, width int) string {
	if width < runewidth.StringWidth(legend)+2 {
		width = runewidth.StringWidth(legend) + 2
	}
	title = runewidth.Truncate(title, width-4, "…")

	var b strings.Builder
	b.WriteString("┌─ " + title + " " + strings.Repeat("─", width-runewidth.StringWidth(title)-3) + "┐\n")
	for _, row := range rows {
		b.WriteString("│" + runewidth.FillRight(row, width) + "│\n")
	}
	b.WriteString("├" + strings.Repeat("─", width) + "┤\n")
	b.WriteString("│ " + runewidth.FillRight(legend, width-1) + "│\n")
	b.WriteString("└" + strings.Repeat("─", width) + "┘\n")
	return b.String()
}

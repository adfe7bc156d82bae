// Package mapview draws result markers on a character grid framed by the
// explorer's viewport.
package mapview

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/geo"
)

// Glyphs used on the grid.
const (
	GlyphMarker      = 'o'
	GlyphHighlighted = '◉'
	GlyphCluster     = '*'
	GlyphCentre      = '+'
	glyphEmpty       = ' '
)

// minSpan keeps a single un-padded point from collapsing the frame.
const minSpan = 1.0 / (1 << 20)

type cell struct {
	glyph rune
	count int
}

// Map renders the current results inside the viewport.
type Map struct {
	styles *styles.Styles
	width  int
	height int

	results   domain.ResultSet
	selection domain.Selection
	viewport  domain.Viewport
}

// New creates a map component.
func New(s *styles.Styles) *Map {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Map{styles: s, width: 40, height: 12}
}

// Init initialises the map.
func (m *Map) Init() tea.Cmd {
	return nil
}

// SetSnapshot takes results, selection and viewport from a snapshot.
func (m *Map) SetSnapshot(snap domain.Snapshot) {
	m.results = snap.Results
	m.selection = snap.Selection
	m.viewport = snap.Viewport
}

// SetDimensions sets the grid size in cells, excluding the frame.
func (m *Map) SetDimensions(width, height int) {
	m.width = max(width, 8)
	m.height = max(height, 4)
}

// frame returns the visible region in web mercator unit coordinates.
func (m *Map) frame() (x0, y0, x1, y1 float64) {
	vp := m.viewport
	if !vp.Default && (vp.Bounds.LatSpan() > 0 || vp.Bounds.LonSpan() > 0) {
		x0, y0 = geo.ToUnit(vp.Bounds.MaxLat, vp.Bounds.MinLon)
		x1, y1 = geo.ToUnit(vp.Bounds.MinLat, vp.Bounds.MaxLon)
	} else {
		cx, cy := geo.ToUnit(vp.Center.Lat, vp.Center.Lon)
		half := 0.5 / math.Exp2(float64(max(vp.Zoom, 0)))
		x0, x1 = cx-half, cx+half
		y0, y1 = cy-half, cy+half
	}
	if x1-x0 < minSpan {
		mid := (x0 + x1) / 2
		x0, x1 = mid-minSpan/2, mid+minSpan/2
	}
	if y1-y0 < minSpan {
		mid := (y0 + y1) / 2
		y0, y1 = mid-minSpan/2, mid+minSpan/2
	}
	return x0, y0, x1, y1
}

// Cell returns the grid cell for a coordinate, or false when it falls
// outside the viewport.
func (m *Map) Cell(p domain.LatLng) (col, row int, ok bool) {
	x0, y0, x1, y1 := m.frame()
	x, y := geo.ToUnit(p.Lat, p.Lon)

	fx := (x - x0) / (x1 - x0)
	fy := (y - y0) / (y1 - y0)
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}

	col = int(math.Round(fx * float64(m.width-1)))
	row = int(math.Round(fy * float64(m.height-1)))
	return col, row, true
}

// grid places every marker. The highlighted marker wins its cell.
func (m *Map) grid() ([][]cell, int, int, bool) {
	g := make([][]cell, m.height)
	for r := range g {
		g[r] = make([]cell, m.width)
		for c := range g[r] {
			g[r][c].glyph = glyphEmpty
		}
	}

	if len(m.results) == 0 {
		if col, row, ok := m.Cell(m.viewport.Center); ok {
			g[row][col].glyph = GlyphCentre
		}
		return g, 0, 0, false
	}

	var hcol, hrow int
	var hok bool
	for _, p := range m.results {
		col, row, ok := m.Cell(p.Position())
		if !ok {
			continue
		}
		c := &g[row][col]
		c.count++
		if m.selection.Highlighted(p.ID) {
			c.glyph = GlyphHighlighted
			hcol, hrow, hok = col, row, true
			continue
		}
		switch c.glyph {
		case GlyphHighlighted:
		case glyphEmpty:
			c.glyph = GlyphMarker
		default:
			c.glyph = GlyphCluster
		}
	}
	return g, hcol, hrow, hok
}

// View renders the framed grid and a caption.
func (m *Map) View() string {
	g, hcol, hrow, hok := m.grid()

	label := ""
	if hok {
		if id, ok := m.selection.ID(); ok {
			if p, found := m.results.Find(id); found {
				label = " " + p.Name
			}
		}
	}

	rows := make([]string, m.height)
	for r := range g {
		var b strings.Builder
		labelStart, labelEnd := -1, -1
		if hok && r == hrow && label != "" {
			runes := []rune(label)
			n := min(len(runes), m.width-hcol-1)
			if n > 1 {
				labelStart, labelEnd = hcol+1, hcol+1+n
				label = string(runes[:n])
			}
		}

		for c := 0; c < m.width; c++ {
			if c == labelStart {
				b.WriteString(m.styles.Label.Render(label))
			}
			if c >= labelStart && c < labelEnd {
				continue
			}
			b.WriteString(m.renderCell(g[r][c]))
		}
		rows[r] = b.String()
	}

	return m.styles.Map.Render(strings.Join(rows, "\n")) + "\n" + m.caption()
}

func (m *Map) renderCell(c cell) string {
	switch c.glyph {
	case GlyphHighlighted:
		return m.styles.MarkerHighlighted.Render(string(c.glyph))
	case GlyphMarker, GlyphCluster:
		return m.styles.Marker.Render(string(c.glyph))
	case GlyphCentre:
		return m.styles.Muted.Render(string(c.glyph))
	default:
		return string(c.glyph)
	}
}

func (m *Map) caption() string {
	vp := m.viewport
	text := fmt.Sprintf("centre %s  zoom %d", vp.Center, vp.Zoom)
	if vp.Default {
		text += "  (default view)"
	}
	return m.styles.Muted.Render(text)
}

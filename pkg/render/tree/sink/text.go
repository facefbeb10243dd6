package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/arbor/pkg/lineage/layout"
)

const (
	up uint8 = 1 << iota
	down
	left
	right
)

var boxRunes = map[uint8]rune{
	up | down:                '│',
	up:                       '│',
	down:                     '│',
	left | right:             '─',
	left:                     '─',
	right:                    '─',
	down | right:             '┌',
	down | left:              '┐',
	up | right:               '└',
	up | left:                '┘',
	up | down | right:        '├',
	up | down | left:         '┤',
	left | right | down:      '┬',
	left | right | up:        '┴',
	up | down | left | right: '┼',
}

type cell struct {
	mask   uint8
	dashed bool
	label  rune
	colour layout.Colour
	set    bool
}

func (c cell) glyph() rune {
	if c.label != 0 {
		return c.label
	}
	if c.mask == 0 {
		return ' '
	}
	if c.dashed {
		switch c.mask {
		case up | down, up, down:
			return '┆'
		case left | right, left, right:
			return '┄'
		}
	}
	return boxRunes[c.mask]
}

// Largest grid the text canvas draws. Drawings that would exceed it, such
// as time axes over epoch-scale frames, are shrunk to fit.
const (
	MaxTextRows = 2000
	MaxTextCols = 2000
)

// fitScale returns scale, reduced so that extent*scale stays within limit.
func fitScale(extent, scale, limit float64) float64 {
	if extent <= 0 {
		return scale
	}
	if math.IsInf(extent, 0) || math.IsNaN(extent) {
		return 0
	}
	return math.Min(scale, limit/extent)
}

// cells is the number of grid steps extent spans at scale.
func cells(extent, scale float64) int {
	n := math.Round(extent * scale)
	if math.IsNaN(n) || n < 0 {
		return 0
	}
	return int(n)
}

// TextOption configures a [TextCanvas].
type TextOption func(*TextCanvas)

// WithCellScale sets how many character cells one layout unit spans on
// each axis.
func WithCellScale(x, y float64) TextOption {
	return func(c *TextCanvas) { c.scaleX, c.scaleY = x, y }
}

// WithStyled colours edges and labels with ANSI escapes.
func WithStyled() TextOption { return func(c *TextCanvas) { c.styled = true } }

// TextCanvas is a renderer that rasterises the drawing onto a character
// grid. Branches are drawn as elbows: across from the parent, then down to
// the child. A label that would cover a branch moves up one row. Labels
// dimmed by a highlight are rendered faint when styled. The grid never
// exceeds [MaxTextRows] by [MaxTextCols] plus room for labels.
type TextCanvas struct {
	primitives
	scaleX, scaleY float64
	styled         bool
}

// NewTextCanvas returns an empty canvas.
func NewTextCanvas(opts ...TextOption) *TextCanvas {
	c := &TextCanvas{scaleX: 4, scaleY: 3}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderText draws t onto a fresh canvas and returns the text.
func RenderText(t layout.Tree, opts ...TextOption) string {
	c := NewTextCanvas(opts...)
	c.fromTree(&t)
	return c.String()
}

// String returns the current drawing. Trailing spaces are trimmed from
// every line.
func (c *TextCanvas) String() string {
	if c.Empty() {
		return ""
	}
	b := c.bounds()
	longest := 0
	for _, a := range c.annotations {
		longest = max(longest, len([]rune(a.Label)))
	}
	sx := fitScale(b.Width(), c.scaleX, MaxTextCols)
	sy := fitScale(b.Height(), c.scaleY, MaxTextRows)
	drawCols := cells(b.Width(), sx)
	cols := drawCols + longest + 2
	rows := cells(b.Height(), sy) + 1

	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}
	at := func(p layout.Point) (int, int) {
		r := cells(p.Y-b.MinY, sy)
		col := cells(p.X-b.MinX, sx)
		return min(max(r, 0), rows-1), min(max(col, 0), drawCols)
	}

	for _, e := range c.edges {
		r1, c1 := at(e.Start)
		r2, c2 := at(e.End)
		dashed := e.Style == layout.StyleDashed
		horizontal(grid, r1, c1, c2, e.Colour, dashed)
		vertical(grid, c2, r1, r2, e.Colour, dashed)
	}
	for _, a := range c.annotations {
		r, col := at(a.Position)
		label := []rune(a.Label)
		if r > 0 && crossesLine(grid[r], col+1, len(label)) {
			r--
		}
		for i, ch := range label {
			if x := col + 1 + i; x < cols {
				grid[r][x].label = ch
				grid[r][x].colour = a.Colour
				grid[r][x].set = true
			}
		}
	}

	var sb strings.Builder
	for i, row := range grid {
		var line strings.Builder
		for _, cl := range row {
			line.WriteString(c.cellString(cl))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if i < len(grid)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (c *TextCanvas) cellString(cl cell) string {
	r := string(cl.glyph())
	if !c.styled || !cl.set || r == " " {
		return r
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(cl.colour.Hex()))
	if cl.label != 0 && cl.colour.A < 1 {
		style = style.Faint(true)
	}
	if cl.label != 0 && cl.colour.A >= 1 {
		style = style.Bold(true)
	}
	return style.Render(r)
}

// crossesLine reports whether n cells from col on row already hold a line.
func crossesLine(row []cell, col, n int) bool {
	for x := col; x < col+n && x < len(row); x++ {
		if row[x].mask != 0 {
			return true
		}
	}
	return false
}

func horizontal(grid [][]cell, row, from, to int, colour layout.Colour, dashed bool) {
	if from == to {
		return
	}
	lo, hi := min(from, to), max(from, to)
	for x := lo; x <= hi; x++ {
		cl := &grid[row][x]
		if x > lo {
			cl.mask |= left
		}
		if x < hi {
			cl.mask |= right
		}
		cl.dashed = dashed
		cl.colour = colour
		cl.set = true
	}
}

func vertical(grid [][]cell, col, from, to int, colour layout.Colour, dashed bool) {
	if from == to {
		return
	}
	lo, hi := min(from, to), max(from, to)
	for y := lo; y <= hi; y++ {
		cl := &grid[y][col]
		if y > lo {
			cl.mask |= up
		}
		if y < hi {
			cl.mask |= down
		}
		cl.dashed = dashed
		cl.colour = colour
		cl.set = true
	}
}

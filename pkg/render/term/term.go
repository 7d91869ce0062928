// Package term rasterizes layout snapshots onto a character grid.
//
// The grid maps the square [-Dim/2, Dim/2]² of the layout onto Width×Height
// cells with y pointing up. Positions are scaled by margin/MaxRadius first,
// the same normalization applied by the final layout pass, so intermediate
// frames fill the drawing like the final one does.
//
//	c := term.Draw(g, snap, term.Options{Width: 80, Height: 40, Dim: 1000, Margin: 360})
//	fmt.Println(c.Render())
package term

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/render"
)

// Glyphs used on the canvas.
const (
	NodeGlyph = '●'
	EdgeGlyph = '·'
)

type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindEdge
	kindText
	kindNode
)

type cell struct {
	r    rune
	kind cellKind
}

var styles = map[cellKind]lipgloss.Style{
	kindEmpty: lipgloss.NewStyle().Background(lipgloss.Color(render.ColorFrame)),
	kindEdge:  lipgloss.NewStyle().Background(lipgloss.Color(render.ColorFrame)).Foreground(lipgloss.Color(render.ColorEdge)),
	kindText:  lipgloss.NewStyle().Background(lipgloss.Color(render.ColorFrame)).Foreground(lipgloss.Color(render.ColorText)),
	kindNode:  lipgloss.NewStyle().Background(lipgloss.Color(render.ColorFrame)).Foreground(lipgloss.Color(render.ColorNode)).Bold(true),
}

// Canvas is a fixed-size character grid over the layout frame.
type Canvas struct {
	width, height int
	dim           float64
	cells         [][]cell
}

// NewCanvas creates an empty canvas covering [-dim/2, dim/2]².
func NewCanvas(width, height int, dim float64) *Canvas {
	width, height = max(width, 1), max(height, 1)
	cells := make([][]cell, height)
	for i := range cells {
		cells[i] = make([]cell, width)
		for j := range cells[i] {
			cells[i][j] = cell{r: ' '}
		}
	}
	return &Canvas{width: width, height: height, dim: dim, cells: cells}
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Project maps a layout position to a cell. ok is false outside the frame.
func (c *Canvas) Project(p r2.Vec) (col, row int, ok bool) {
	half := c.dim / 2
	fx := (p.X + half) / c.dim
	fy := (half - p.Y) / c.dim
	col = int(math.Floor(fx * float64(c.width)))
	row = int(math.Floor(fy * float64(c.height)))
	if col == c.width && p.X == half {
		col--
	}
	if row == c.height && p.Y == -half {
		row--
	}
	return col, row, col >= 0 && col < c.width && row >= 0 && row < c.height
}

func (c *Canvas) set(col, row int, r rune, kind cellKind) {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return
	}
	if c.cells[row][col].kind > kind {
		return
	}
	c.cells[row][col] = cell{r: r, kind: kind}
}

// Node draws a node glyph at p.
func (c *Canvas) Node(p r2.Vec) {
	if col, row, ok := c.Project(p); ok {
		c.set(col, row, NodeGlyph, kindNode)
	}
}

// Text writes s starting one cell right of p.
func (c *Canvas) Text(p r2.Vec, s string) {
	col, row, ok := c.Project(p)
	if !ok {
		return
	}
	for i, r := range []rune(s) {
		c.set(col+1+i, row, r, kindText)
	}
}

// Line draws a dotted segment from a to b. With arrow set, the cell next to
// b gets a direction glyph.
func (c *Canvas) Line(a, b r2.Vec, arrow bool) {
	x0, y0, _ := c.Project(a)
	x1, y1, _ := c.Project(b)
	pts := bresenham(x0, y0, x1, y1)
	if len(pts) < 3 {
		return
	}
	inner := pts[1 : len(pts)-1]
	for _, p := range inner {
		c.set(p[0], p[1], EdgeGlyph, kindEdge)
	}
	if arrow {
		last := inner[len(inner)-1]
		c.set(last[0], last[1], arrowGlyph(x1-x0, y1-y0), kindEdge)
	}
}

// String returns the canvas without colours.
func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		for _, cl := range row {
			sb.WriteRune(cl.r)
		}
		if i < len(c.cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Render returns the canvas styled with the drawing palette.
func (c *Canvas) Render() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		var sb strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].kind == row[start].kind {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:j] {
				run.WriteRune(cl.r)
			}
			sb.WriteString(styles[row[start].kind].Render(run.String()))
			start = j
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// Options configures [Draw].
type Options struct {
	Width, Height   int
	Dim             float64
	Margin          float64
	ShowNodeLabels  bool
	ShowEdgeWeights bool
}

// Draw rasterizes a snapshot of g. Edges are drawn first so nodes stay
// visible; self-loops are skipped.
func Draw(g *graph.Graph, s layout.Snapshot, opts Options) *Canvas {
	c := NewCanvas(opts.Width, opts.Height, opts.Dim)
	pos := func(id string) r2.Vec {
		p, _ := s.Scaled(id, opts.Margin)
		return p
	}

	for _, key := range g.Edges() {
		if key.IsLoop() {
			continue
		}
		u, v := pos(key.U), pos(key.V)
		c.Line(u, v, g.Directed())
		if opts.ShowEdgeWeights {
			info, _ := g.Edge(key.U, key.V)
			c.Text(labelPoint(u, v, g.Directed()), strconv.FormatFloat(info.Weight, 'g', -1, 64))
		}
	}
	for _, id := range g.Nodes() {
		p := pos(id)
		c.Node(p)
		if opts.ShowNodeLabels {
			c.Text(p, id)
		}
	}
	return c
}

// labelPoint is the midpoint of undirected edges and the point a quarter of
// the way from the tail of directed ones.
func labelPoint(u, v r2.Vec, directed bool) r2.Vec {
	mid := r2.Scale(0.5, r2.Add(u, v))
	if !directed {
		return mid
	}
	return r2.Scale(0.5, r2.Add(u, mid))
}

func bresenham(x0, y0, x1, y1 int) [][2]int {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	var pts [][2]int
	for {
		pts = append(pts, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// arrowGlyph picks one of eight arrows for a cell delta with rows growing
// downward.
func arrowGlyph(dx, dy int) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	angle := math.Atan2(float64(dy), float64(dx))
	idx := int(math.Round(angle/(math.Pi/4))+8) % 8
	return arrows[idx]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

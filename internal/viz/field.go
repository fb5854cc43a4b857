package viz

import (
	"math"
	"strings"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/field"
	"github.com/san-kum/simcore/internal/vmath"
)

var arrows = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// ArrowGlyph returns the eight-way arrow closest to direction v, Y up.
func ArrowGlyph(v vmath.Vec) rune {
	if v == vmath.Zero || !vmath.Finite(v) {
		return '·'
	}
	octant := int(math.Round(math.Atan2(v.Y, v.X)/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}

// ArrowGrid renders a grid of field samples as text, top row first. Source
// positions are marked + or - by charge sign, o when neutral.
func ArrowGrid(s field.Sampler, b dynamo.Bounds, cols, rows int, sources []dynamo.Body) string {
	grid := s.Grid(b, cols, rows, sources)
	if len(grid) == 0 {
		return ""
	}
	cells := make([][]rune, rows)
	for j := range cells {
		cells[j] = make([]rune, cols)
		for i := range cells[j] {
			cells[j][i] = ArrowGlyph(grid[j*cols+i].Field)
		}
	}

	cw, ch := b.Width()/float64(cols), b.Height()/float64(rows)
	for _, src := range sources {
		i := int((src.Pos.X - b.Min.X) / cw)
		j := int((src.Pos.Y - b.Min.Y) / ch)
		if i < 0 || i >= cols || j < 0 || j >= rows {
			continue
		}
		mark := 'o'
		if src.Charge > 0 {
			mark = '+'
		} else if src.Charge < 0 {
			mark = '-'
		}
		cells[j][i] = mark
	}

	var sb strings.Builder
	for j := rows - 1; j >= 0; j-- {
		sb.WriteString(string(cells[j]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// drawField overlays short direction strokes sampled on a coarse grid.
func drawField(c *Canvas, v Viewport, s field.Sampler, sources []dynamo.Body, cols, rows int) {
	stroke := 3.0 / v.Scale
	for _, smp := range s.Grid(v.World(), cols, rows, sources) {
		if smp.Magnitude == 0 {
			continue
		}
		x0, y0 := v.Project(smp.Point)
		x1, y1 := v.Project(smp.Point.Add(smp.Unit.Scale(stroke)))
		c.DrawLine(x0, y0, x1, y1)
	}
}

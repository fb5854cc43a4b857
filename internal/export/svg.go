package export

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/simcore/internal/trajectory"
)

// CanvasToSVG converts a Braille grid to SVG dots.
func CanvasToSVG(grid [][]rune, scale float64) string {
	if len(grid) == 0 {
		return ""
	}

	cols := len(grid[0])
	width := float64(cols) * scale * 2       // 2 sub-pixels per char
	height := float64(len(grid)) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row, line := range grid {
		for col, r := range line {
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a flight path with a ground line. Segments shade
// from startColor at launch to endColor at landing.
func TrajectoryToSVG(points []trajectory.Point, width, height int, startColor, endColor string) string {
	if len(points) < 2 {
		return ""
	}

	from, err := colorful.Hex(startColor)
	if err != nil {
		from = colorful.Color{G: 1}
	}
	to, err := colorful.Hex(endColor)
	if err != nil {
		to = from
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := 0.0, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(x, y float64) (float64, float64) {
		return (x - minX) / rangeX * float64(width), float64(height) - (y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	gx0, gy := project(minX, 0)
	gx1, _ := project(maxX, 0)
	fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#444444\"/>\n", gx0, gy, gx1, gy)

	sb.WriteString("<g fill=\"none\" stroke-width=\"1.5\">\n")
	last := len(points) - 1
	for i := 1; i < len(points); i++ {
		x0, y0 := project(points[i-1].X, points[i-1].Y)
		x1, y1 := project(points[i].X, points[i].Y)
		c := from.BlendHcl(to, float64(i)/float64(last)).Clamped()
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\"/>\n", x0, y0, x1, y1, c.Hex())
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

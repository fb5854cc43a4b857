package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/field"
	"github.com/san-kum/simcore/internal/vmath"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8 in second cell, got %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected empty cell after unset, got %U", c.Grid[0][0])
	}

	c.Clear()
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("expected blank canvas after clear")
	}
}

func TestDrawCircleStaysSymmetric(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)
	for _, p := range [][2]int{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		col, row := p[0]/2, p[1]/4
		bit := rune(pixelMap[p[1]%4][p[0]%2])
		if c.Grid[row][col]&bit == 0 {
			t.Errorf("expected pixel at %v", p)
		}
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Fit(dynamo.NewBounds(20, 10), 81, 41)
	x, y := v.Project(vmath.Vec{X: 0, Y: 0})
	if x != 0 || y != 40 {
		t.Errorf("expected origin at bottom left (0, 40), got (%d, %d)", x, y)
	}
	x, y = v.Project(vmath.Vec{X: 20, Y: 10})
	if x != 80 || y != 0 {
		t.Errorf("expected far corner at (80, 0), got (%d, %d)", x, y)
	}
	p := v.Unproject(40, 20)
	if p.X != 10 || p.Y != 5 {
		t.Errorf("expected centre (10, 5), got %v", p)
	}
}

func TestExtentCoversBodies(t *testing.T) {
	b := Extent([]dynamo.Body{{Pos: vmath.Vec{X: 10, Y: -3}, Radius: 1}})
	if !b.Contains(vmath.Vec{X: 11, Y: 0}, 0) || b.Min.X != -b.Max.X {
		t.Errorf("unexpected extent %+v", b)
	}
}

func TestArrowGlyph(t *testing.T) {
	tests := []struct {
		v    vmath.Vec
		want rune
	}{
		{vmath.Vec{X: 1}, '→'},
		{vmath.Vec{Y: 1}, '↑'},
		{vmath.Vec{X: -1, Y: -1}, '↙'},
		{vmath.Vec{Y: -2}, '↓'},
		{vmath.Zero, '·'},
	}
	for _, tt := range tests {
		if got := ArrowGlyph(tt.v); got != tt.want {
			t.Errorf("ArrowGlyph(%v) = %c, want %c", tt.v, got, tt.want)
		}
	}
}

func TestArrowGridMarksSources(t *testing.T) {
	sources := []dynamo.Body{
		{Pos: vmath.Vec{X: -2}, Charge: 1},
		{Pos: vmath.Vec{X: 2}, Charge: -1},
	}
	b := dynamo.Bounds{Min: vmath.Vec{X: -4, Y: -2}, Max: vmath.Vec{X: 4, Y: 2}}
	out := ArrowGrid(field.Sampler{Kind: field.Electric, K: 1}, b, 8, 4, sources)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if !strings.ContainsRune(out, '+') || !strings.ContainsRune(out, '-') {
		t.Errorf("expected both charges marked:\n%s", out)
	}
}

func TestSpeedColorEnds(t *testing.T) {
	th := ThemeOcean
	if got := th.SpeedColor(0); string(got) != th.Cold {
		t.Errorf("expected cold colour %s, got %s", th.Cold, got)
	}
	if got := th.SpeedColor(2); string(got) != th.Hot {
		t.Errorf("expected hot colour %s, got %s", th.Hot, got)
	}
}

package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DashedVLine marks column x with every other dot.
func (c *Canvas) DashedVLine(x int) {
	_, h := c.Dots()
	for y := 0; y < h; y += 2 {
		c.Set(x, y)
	}
}

// cellX maps cell m of n onto the horizontal dot range.
func (c *Canvas) cellX(m, n int) int {
	w, _ := c.Dots()
	if n <= 1 {
		return 0
	}
	return m * (w - 1) / (n - 1)
}

// valueY maps v in [-peak, peak] onto the vertical dot range, top = +peak.
func (c *Canvas) valueY(v, peak float64) int {
	_, h := c.Dots()
	if peak <= 0 {
		peak = 1
	}
	norm := (peak - v) / (2 * peak)
	norm = max(0, min(1, norm))
	return int(norm * float64(h-1))
}

// Profile draws frame as a connected line scaled to +-peak with a dashed
// zero axis.
func (c *Canvas) Profile(frame []float64, peak float64) {
	if len(frame) == 0 {
		return
	}

	w, _ := c.Dots()
	zero := c.valueY(0, peak)
	for x := 0; x < w; x += 3 {
		c.Set(x, zero)
	}

	n := len(frame)
	px, py := c.cellX(0, n), c.valueY(frame[0], peak)
	for m := 1; m < n; m++ {
		x, y := c.cellX(m, n), c.valueY(frame[m], peak)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// Slab marks both edges of the dielectric region.
func (c *Canvas) Slab(start, width, n int) {
	if width <= 0 {
		return
	}
	c.DashedVLine(c.cellX(start, n))
	c.DashedVLine(c.cellX(start+width, n))
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

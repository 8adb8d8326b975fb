// Package render draws a grid and a found path as text.
package render

import (
	"strings"

	"github.com/pdrpinto/gridastar"
)

const (
	colorWall  = "\033[90m"
	colorStart = "\033[34m"
	colorGoal  = "\033[32m"
	colorPath  = "\033[33m"
	colorReset = "\033[0m"
)

const (
	SymbolWall  = '#'
	SymbolOpen  = '.'
	SymbolStart = 'S'
	SymbolGoal  = 'G'
	SymbolPath  = '*'
)

// Renderer turns a grid, its endpoints and a path into one line per row.
// With Color set, symbols are wrapped in ANSI escape codes.
type Renderer struct {
	Color bool
}

// Render draws one line per row. Walls win over the endpoints, and the endpoints over path cells.
func (r Renderer) Render(grid *gridastar.Grid, start, goal gridastar.Coordinate, path gridastar.Path) string {
	onPath := make(map[gridastar.Coordinate]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var b strings.Builder
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Columns(); x++ {
			c := gridastar.Coordinate{X: x, Y: y}
			switch {
			case grid.IsWall(c):
				r.write(&b, colorWall, SymbolWall)
			case c == start:
				r.write(&b, colorStart, SymbolStart)
			case c == goal:
				r.write(&b, colorGoal, SymbolGoal)
			case onPath[c]:
				r.write(&b, colorPath, SymbolPath)
			default:
				b.WriteByte(SymbolOpen)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r Renderer) write(b *strings.Builder, color string, symbol byte) {
	if !r.Color {
		b.WriteByte(symbol)
		return
	}
	b.WriteString(color)
	b.WriteByte(symbol)
	b.WriteString(colorReset)
}

// Text renders without colour.
func Text(grid *gridastar.Grid, start, goal gridastar.Coordinate, path gridastar.Path) string {
	return Renderer{}.Render(grid, start, goal, path)
}

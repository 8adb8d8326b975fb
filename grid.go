package gridastar

import (
	"fmt"
	"math"
	"strings"
)

// Coordinate addresses a cell. X is the column, Y the row.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinate) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Manhattan returns |b.x - a.x| + |b.y - a.y|.
func Manhattan(a, b Coordinate) int {
	dx := b.X - a.X
	if dx < 0 {
		dx = -dx
	}
	dy := b.Y - a.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Grid is a fixed rows × columns field of open and wall cells.
// A search only reads it.
type Grid struct {
	rows    int
	columns int
	walls   []bool
}

// NewGrid returns a grid with every cell open. The cell count must fit in an int.
func NewGrid(rows, columns int) (*Grid, error) {
	if rows <= 0 || columns <= 0 || rows > math.MaxInt/columns {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, columns)
	}
	return &Grid{rows: rows, columns: columns, walls: make([]bool, rows*columns)}, nil
}

// ParseGrid reads one row per line, '#' for a wall and '.' for an open cell.
// Blank lines around the grid are ignored.
func ParseGrid(text string) (*Grid, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidGrid)
	}
	columns := len(strings.TrimSpace(lines[0]))
	grid, err := NewGrid(len(lines), columns)
	if err != nil {
		return nil, err
	}
	for y, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, y, len(line), columns)
		}
		for x, r := range line {
			switch r {
			case '#':
				grid.walls[grid.index(Coordinate{X: x, Y: y})] = true
			case '.':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %s", ErrInvalidGrid, r, Coordinate{X: x, Y: y})
			}
		}
	}
	return grid, nil
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the grid width.
func (g *Grid) Columns() int { return g.columns }

func (g *Grid) index(c Coordinate) int { return c.Y*g.columns + c.X }

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.columns && c.Y >= 0 && c.Y < g.rows
}

// IsWall reports whether c is a wall. Out-of-bounds cells are not walls.
func (g *Grid) IsWall(c Coordinate) bool {
	return g.InBounds(c) && g.walls[g.index(c)]
}

// SetWall marks or clears a wall. It is meant for grid construction only.
func (g *Grid) SetWall(c Coordinate, wall bool) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s outside %dx%d grid", ErrInvalidCoordinate, c, g.rows, g.columns)
	}
	g.walls[g.index(c)] = wall
	return nil
}

// Walls lists wall cells in row-major order.
func (g *Grid) Walls() []Coordinate { return g.cells(true) }

// OpenCells lists non-wall cells in row-major order.
func (g *Grid) OpenCells() []Coordinate { return g.cells(false) }

func (g *Grid) cells(wall bool) []Coordinate {
	var out []Coordinate
	for i, w := range g.walls {
		if w == wall {
			out = append(out, Coordinate{X: i % g.columns, Y: i / g.columns})
		}
	}
	return out
}

// Neighbors returns the in-bounds orthogonal neighbours of c, walls included,
// in the order left, up, right, down.
func (g *Grid) Neighbors(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, d := range [...]Coordinate{{X: -1}, {Y: -1}, {X: 1}, {Y: 1}} {
		n := Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders the grid in the format ParseGrid accepts.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.columns + 1))
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.columns; x++ {
			if g.walls[g.index(Coordinate{X: x, Y: y})] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

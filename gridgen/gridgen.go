// Package gridgen builds random grids and picks random open cells for searches.
package gridgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pdrpinto/gridastar"
)

// DefaultWallProbability is the share of walls in a uniformly generated grid.
const DefaultWallProbability = 0.2

var (
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
	ErrNoOpenCell         = errors.New("grid has no open cell")
)

// Build returns a rows × columns grid where each cell is independently a wall
// with probability wallProbability. The same source seed gives the same grid.
func Build(rows, columns int, wallProbability float64, src rand.Source) (*gridastar.Grid, error) {
	if wallProbability < 0 || wallProbability > 1 {
		return nil, fmt.Errorf("%w: wall probability %v", ErrInvalidProbability, wallProbability)
	}
	grid, err := gridastar.NewGrid(rows, columns)
	if err != nil {
		return nil, err
	}
	r := rand.New(src)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			if r.Float64() < wallProbability {
				if err := grid.SetWall(gridastar.Coordinate{X: x, Y: y}, true); err != nil {
					return nil, err
				}
			}
		}
	}
	return grid, nil
}

// Clusters shapes BuildClustered: Count random walks of Steps moves each, dropping
// a wall on the visited cell with probability Density.
type Clusters struct {
	Count   int
	Steps   int
	Density float64
}

// BuildClustered grows wall clusters with random walks. Cells listed in keep are
// never walled.
func BuildClustered(rows, columns int, clusters Clusters, src rand.Source, keep ...gridastar.Coordinate) (*gridastar.Grid, error) {
	if clusters.Density < 0 || clusters.Density > 1 {
		return nil, fmt.Errorf("%w: density %v", ErrInvalidProbability, clusters.Density)
	}
	grid, err := gridastar.NewGrid(rows, columns)
	if err != nil {
		return nil, err
	}
	kept := make(map[gridastar.Coordinate]bool, len(keep))
	for _, c := range keep {
		kept[c] = true
	}

	r := rand.New(src)
	directions := [...]gridastar.Coordinate{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	for c := 0; c < clusters.Count; c++ {
		p := gridastar.Coordinate{X: r.Intn(columns), Y: r.Intn(rows)}
		for s := 0; s < clusters.Steps; s++ {
			if r.Float64() < clusters.Density && !kept[p] {
				if err := grid.SetWall(p, true); err != nil {
					return nil, err
				}
			}
			d := directions[r.Intn(len(directions))]
			next := gridastar.Coordinate{X: p.X + d.X, Y: p.Y + d.Y}
			if grid.InBounds(next) {
				p = next
			}
		}
	}
	return grid, nil
}

// RandomOpen picks a uniformly random non-wall cell.
func RandomOpen(grid *gridastar.Grid, r *rand.Rand) (gridastar.Coordinate, error) {
	open := grid.OpenCells()
	if len(open) == 0 {
		return gridastar.Coordinate{}, ErrNoOpenCell
	}
	return open[r.Intn(len(open))], nil
}

// RandomEndpoints picks a start and a goal among open cells. They differ whenever
// the grid has at least two open cells.
func RandomEndpoints(grid *gridastar.Grid, r *rand.Rand) (start, goal gridastar.Coordinate, err error) {
	open := grid.OpenCells()
	switch len(open) {
	case 0:
		return start, goal, ErrNoOpenCell
	case 1:
		return open[0], open[0], nil
	}
	i := r.Intn(len(open))
	j := r.Intn(len(open) - 1)
	if j >= i {
		j++
	}
	return open[i], open[j], nil
}

package gridastar

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Grid {
	t.Helper()
	grid, err := ParseGrid(text)
	require.NoError(t, err)
	return grid
}

func randomGrid(rng *rand.Rand, rows, columns int, wallProbability float64) *Grid {
	grid, _ := NewGrid(rows, columns)
	for i := range grid.walls {
		grid.walls[i] = rng.Float64() < wallProbability
	}
	return grid
}

// bfsDistance is the reference shortest distance, -1 when unreachable.
func bfsDistance(grid *Grid, start, goal Coordinate) int {
	distance := map[Coordinate]int{start: 0}
	queue := []Coordinate{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return distance[current]
		}
		for _, n := range grid.Neighbors(current) {
			if _, seen := distance[n]; seen || grid.IsWall(n) {
				continue
			}
			distance[n] = distance[current] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

func assertValidPath(t *testing.T, grid *Grid, path Path, start, goal Coordinate) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
	for i, c := range path {
		assert.False(t, grid.IsWall(c), "wall on path at %s", c)
		if i > 0 {
			assert.Equal(t, 1, Manhattan(path[i-1], c), "step %s -> %s", path[i-1], c)
		}
	}
}

func TestSearchOpenGridMatchesManhattan(t *testing.T) {
	grid, err := NewGrid(4, 5)
	require.NoError(t, err)
	cells := grid.OpenCells()
	for _, start := range cells {
		for _, goal := range cells {
			path, err := Search(grid, start, goal)
			require.NoError(t, err)
			assert.Equal(t, Manhattan(start, goal), path.Steps(), "%s -> %s", start, goal)
			assertValidPath(t, grid, path, start, goal)
		}
	}
}

func TestSearchRandomGridsAreShortest(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	finder := New()
	for i := 0; i < 200; i++ {
		grid := randomGrid(rng, 3+rng.Intn(10), 3+rng.Intn(10), 0.3)
		open := grid.OpenCells()
		if len(open) == 0 {
			continue
		}
		start := open[rng.Intn(len(open))]
		goal := open[rng.Intn(len(open))]

		path, err := finder.Search(grid, start, goal)
		require.NoError(t, err)

		want := bfsDistance(grid, start, goal)
		if want < 0 {
			assert.Empty(t, path, "grid %d:\n%s", i, grid)
			continue
		}
		assert.Equal(t, want, path.Steps(), "grid %d:\n%s", i, grid)
		assertValidPath(t, grid, path, start, goal)
	}
}

func TestSearchOpenThreeByThree(t *testing.T) {
	grid, err := NewGrid(3, 3)
	require.NoError(t, err)

	result, err := New().Find(context.Background(), grid, Coordinate{X: 0, Y: 0}, Coordinate{X: 2, Y: 2})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, 4, result.Cost)
	assert.Equal(t, Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}, result.Path)
	assert.Equal(t, 8, result.Expanded)
}

func TestSearchWalledMiddleColumn(t *testing.T) {
	grid := mustParse(t, `
.#.
.#.
.#.
`)
	result, err := New().Find(context.Background(), grid, Coordinate{X: 0, Y: 1}, Coordinate{X: 2, Y: 1})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.NotNil(t, result.Path)
	assert.Empty(t, result.Path)
	assert.Equal(t, 3, result.Expanded)
}

func TestSearchEnclosedGoal(t *testing.T) {
	grid := mustParse(t, `
.....
..#..
.#.#.
..#..
.....
`)
	path, err := Search(grid, Coordinate{X: 0, Y: 0}, Coordinate{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSearchAroundWalls(t *testing.T) {
	grid := mustParse(t, `
.....
####.
.....
.####
.....
`)
	path, err := Search(grid, Coordinate{X: 0, Y: 0}, Coordinate{X: 4, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, 16, path.Steps())
	assertValidPath(t, grid, path, Coordinate{X: 0, Y: 0}, Coordinate{X: 4, Y: 4})
}

func TestSearchStartEqualsGoal(t *testing.T) {
	grid, err := NewGrid(2, 2)
	require.NoError(t, err)
	path, err := Search(grid, Coordinate{X: 1, Y: 1}, Coordinate{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, Path{{X: 1, Y: 1}}, path)
	assert.Equal(t, 0, path.Steps())
}

func TestSearchIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	grid := randomGrid(rng, 25, 25, 0.2)
	require.NoError(t, grid.SetWall(Coordinate{X: 0, Y: 0}, false))
	require.NoError(t, grid.SetWall(Coordinate{X: 24, Y: 24}, false))

	first, err := Search(grid, Coordinate{X: 0, Y: 0}, Coordinate{X: 24, Y: 24})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Search(grid, Coordinate{X: 0, Y: 0}, Coordinate{X: 24, Y: 24})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearchInvalidCoordinates(t *testing.T) {
	grid := mustParse(t, `
..
#.
`)
	tests := []struct {
		name        string
		start, goal Coordinate
		role        string
	}{
		{"start out of bounds", Coordinate{X: -1, Y: 0}, Coordinate{X: 1, Y: 1}, "start"},
		{"goal out of bounds", Coordinate{X: 0, Y: 0}, Coordinate{X: 2, Y: 0}, "goal"},
		{"start on wall", Coordinate{X: 0, Y: 1}, Coordinate{X: 1, Y: 1}, "start"},
		{"goal on wall", Coordinate{X: 1, Y: 0}, Coordinate{X: 0, Y: 1}, "goal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := Search(grid, tt.start, tt.goal)
			assert.Nil(t, path)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)

			var coordinateErr *CoordinateError
			require.True(t, errors.As(err, &coordinateErr))
			assert.Equal(t, tt.role, coordinateErr.Role)
		})
	}

	_, err := Search(nil, Coordinate{}, Coordinate{})
	assert.ErrorIs(t, err, ErrNilGrid)
}

func TestFindHonoursContext(t *testing.T) {
	grid, err := NewGrid(10, 10)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New().Find(ctx, grid, Coordinate{}, Coordinate{X: 9, Y: 9})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithHeuristic(t *testing.T) {
	grid, err := NewGrid(6, 6)
	require.NoError(t, err)
	zero := func(Coordinate, Coordinate) int { return 0 }

	dijkstra, err := New(WithHeuristic(zero)).Find(context.Background(), grid, Coordinate{}, Coordinate{X: 2, Y: 2})
	require.NoError(t, err)
	guided, err := New().Find(context.Background(), grid, Coordinate{}, Coordinate{X: 2, Y: 2})
	require.NoError(t, err)

	assert.Equal(t, guided.Cost, dijkstra.Cost)
	assert.Greater(t, dijkstra.Expanded, guided.Expanded)
}

package gridastar

import (
	"sort"

	"github.com/pdrpinto/gridastar/internal"
	"github.com/zyedidia/generic/mapset"
)

type score struct {
	g, h, f int
}

// search holds the state of one A* run. Nothing in it is shared with the grid,
// so every run starts clean.
type search struct {
	grid      *Grid
	start     Coordinate
	goal      Coordinate
	heuristic Heuristic

	openSet   *openSet
	closedSet mapset.Set[Coordinate]
	scores    map[Coordinate]*score
	cameFrom  map[Coordinate]Coordinate

	expanded int
	done     bool
	found    bool
	path     Path
}

func newSearch(grid *Grid, start, goal Coordinate, heuristic Heuristic) *search {
	s := &search{
		grid:      grid,
		start:     start,
		goal:      goal,
		heuristic: heuristic,
		openSet:   newOpenSet(),
		closedSet: mapset.New[Coordinate](),
		scores:    make(map[Coordinate]*score),
		cameFrom:  make(map[Coordinate]Coordinate),
	}
	h := heuristic(start, goal)
	s.scores[start] = &score{g: 0, h: h, f: h}
	s.openSet.Push(start, h)
	return s
}

// step selects the best frontier cell and either finishes on the goal or expands it.
// It returns false once the search is over and nothing was selected.
func (s *search) step() (Coordinate, bool) {
	if s.done {
		return Coordinate{}, false
	}
	current, ok := s.openSet.Min()
	if !ok {
		s.done = true
		return Coordinate{}, false
	}

	if current == s.goal {
		s.done = true
		s.found = true
		s.path = internal.WalkBack(s.cameFrom, current, s.scores[current].g)
		return current, true
	}

	s.openSet.Remove(current)
	s.closedSet.Put(current)
	s.expanded++

	currentScore := s.scores[current]
	for _, neighbor := range s.grid.Neighbors(current) {
		if s.grid.IsWall(neighbor) || s.closedSet.Has(neighbor) {
			continue
		}

		tentativeG := currentScore.g + 1
		neighborScore := s.scores[neighbor]
		if !s.openSet.Contains(neighbor) {
			h := s.heuristic(neighbor, s.goal)
			neighborScore = &score{g: tentativeG, h: h, f: tentativeG + h}
			s.scores[neighbor] = neighborScore
			s.cameFrom[neighbor] = current
			s.openSet.Push(neighbor, neighborScore.f)
		} else if tentativeG < neighborScore.g {
			neighborScore.g = tentativeG
			neighborScore.f = tentativeG + neighborScore.h
			s.cameFrom[neighbor] = current
			s.openSet.Update(neighbor, neighborScore.f)
		}
	}
	return current, true
}

func (s *search) result() Result {
	result := Result{Expanded: s.expanded, Found: s.found}
	if s.found {
		result.Path = s.path
		result.Cost = s.path.Steps()
	} else {
		result.Path = Path{}
	}
	return result
}

func (s *search) openCoordinates() []Coordinate {
	return sortRowMajor(s.openSet.Coordinates())
}

func (s *search) closedCoordinates() []Coordinate {
	out := make([]Coordinate, 0, s.closedSet.Size())
	s.closedSet.Each(func(c Coordinate) {
		out = append(out, c)
	})
	return sortRowMajor(out)
}

func sortRowMajor(cs []Coordinate) []Coordinate {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
	return cs
}

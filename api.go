package gridastar

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Heuristic returns the estimated cost from one cell to another.
// It must not overestimate for results to stay shortest.
type Heuristic func(from, to Coordinate) int

// Path is an ordered walk from start to goal, both included.
// An empty Path means the goal is unreachable.
type Path []Coordinate

// Steps returns the number of moves along the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Empty reports whether no path was found.
func (p Path) Empty() bool { return len(p) == 0 }

// Result contains the outcome of a search
type Result struct {
	Path     Path `json:"path"`
	Cost     int  `json:"cost"`
	Expanded int  `json:"expanded"`
	Found    bool `json:"found"`
}

// Options defines parameters for the search.
type Options struct {
	Heuristic       Heuristic
	NumberOfWorkers int
	Logger          logrus.FieldLogger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces the Manhattan heuristic.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithWorkers specifies how many goroutines SearchBatch may run at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets where search summaries are logged at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(options *Options) { options.Logger = logger }
}

// PathFinder runs A* searches over grids. It holds no per-search state and is safe
// for concurrent use.
type PathFinder struct {
	options Options
}

// New returns a PathFinder with Manhattan distance, one worker per CPU and the
// logrus standard logger unless overridden.
func New(options ...Option) *PathFinder {
	searchOptions := Options{
		Heuristic:       Manhattan,
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          logrus.StandardLogger(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = runtime.NumCPU()
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = logrus.StandardLogger()
	}
	return &PathFinder{options: searchOptions}
}

var defaultPathFinder = New()

// Search runs A* with default options. See PathFinder.Search.
func Search(grid *Grid, start, goal Coordinate) (Path, error) {
	return defaultPathFinder.Search(grid, start, goal)
}

// Search returns a shortest 4-directional path from start to goal, or an empty
// path when the goal cannot be reached. Start or goal out of bounds or on a wall
// fails with an error wrapping ErrInvalidCoordinate.
func (pf *PathFinder) Search(grid *Grid, start, goal Coordinate) (Path, error) {
	result, err := pf.Find(context.Background(), grid, start, goal)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// Find is Search with statistics. The context is checked between expansions.
func (pf *PathFinder) Find(ctx context.Context, grid *Grid, start, goal Coordinate) (Result, error) {
	if err := checkEndpoints(grid, start, goal); err != nil {
		return Result{}, err
	}

	s := newSearch(grid, start, goal, pf.options.Heuristic)
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, ok := s.step(); !ok || s.done {
			break
		}
	}

	result := s.result()
	pf.options.Logger.WithFields(logrus.Fields{
		"start":    start,
		"goal":     goal,
		"expanded": result.Expanded,
		"found":    result.Found,
		"cost":     result.Cost,
	}).Debug("search finished")
	return result, nil
}

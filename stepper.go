package gridastar

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Coordinate   `json:"current"`
	Open      []Coordinate `json:"open"`
	Closed    []Coordinate `json:"closed"`
	Done      bool         `json:"done"`
	Found     bool         `json:"found"`
	Path      Path         `json:"path,omitempty"`
	StepIndex int          `json:"step"`
}

// Stepper drives one search a single selection at a time.
// It is not safe for concurrent use.
type Stepper struct {
	search    *search
	current   Coordinate
	stepCount int
}

// NewStepper validates the endpoints the same way Search does and returns a
// stepper positioned before the first selection.
func (pf *PathFinder) NewStepper(grid *Grid, start, goal Coordinate) (*Stepper, error) {
	if err := checkEndpoints(grid, start, goal); err != nil {
		return nil, err
	}
	return &Stepper{
		search:  newSearch(grid, start, goal, pf.options.Heuristic),
		current: start,
	}, nil
}

// Step advances the search by one selection and returns a snapshot.
// Once the search is done every call returns the final snapshot.
func (s *Stepper) Step() StepSnapshot {
	if current, ok := s.search.step(); ok {
		s.stepCount++
		s.current = current
	}
	return s.Snapshot()
}

// Snapshot reports the current state without advancing.
func (s *Stepper) Snapshot() StepSnapshot {
	snapshot := StepSnapshot{
		Current:   s.current,
		Open:      s.search.openCoordinates(),
		Closed:    s.search.closedCoordinates(),
		Done:      s.search.done,
		Found:     s.search.found,
		StepIndex: s.stepCount,
	}
	if s.search.found {
		snapshot.Path = append(Path(nil), s.search.path...)
	}
	return snapshot
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool { return s.search.done }

// Result returns the outcome so far. Path is empty until the goal is reached.
func (s *Stepper) Result() Result { return s.search.result() }

package gridastar

import (
	"errors"
	"fmt"
)

var (
	ErrNilGrid           = errors.New("grid is nil")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrInvalidGrid       = errors.New("invalid grid text")
)

// CoordinateError reports a start or goal that cannot be searched from or to.
type CoordinateError struct {
	Role       string
	Coordinate Coordinate
	Reason     string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Role, e.Coordinate, e.Reason)
}

func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }

func checkEndpoint(grid *Grid, role string, c Coordinate) error {
	if !grid.InBounds(c) {
		return &CoordinateError{Role: role, Coordinate: c, Reason: "out of bounds"}
	}
	if grid.IsWall(c) {
		return &CoordinateError{Role: role, Coordinate: c, Reason: "is a wall"}
	}
	return nil
}

func checkEndpoints(grid *Grid, start, goal Coordinate) error {
	if grid == nil {
		return ErrNilGrid
	}
	if err := checkEndpoint(grid, "start", start); err != nil {
		return err
	}
	return checkEndpoint(grid, "goal", goal)
}

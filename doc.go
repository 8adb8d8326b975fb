// Package gridastar finds shortest paths on 4-connected grids with the A* algorithm.
//
// It exposes three entry points, all on PathFinder:
//
//   - Search: run the algorithm to completion and get the Path.
//   - Find: same search with a context and expansion statistics in a Result.
//   - NewStepper: advance the search one selection at a time to drive UIs or debugging tools.
//
// Scores and parent links live in per-search side tables, so a Grid can be shared by
// any number of concurrent searches (see SearchBatch).
package gridastar

package gridastar

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Query is one start/goal pair of a batch.
type Query struct {
	Start Coordinate `json:"start"`
	Goal  Coordinate `json:"goal"`
}

// BatchResult pairs a query with its outcome. Err holds precondition failures
// such as an endpoint on a wall.
type BatchResult struct {
	Query
	Result
	Err error `json:"-"`
}

// SearchBatch runs every query against the same grid on a bounded pool of
// goroutines. Results come back in query order. Only context cancellation fails
// the batch as a whole.
func (pf *PathFinder) SearchBatch(ctx context.Context, grid *Grid, queries []Query) ([]BatchResult, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	results := make([]BatchResult, len(queries))
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(pf.options.NumberOfWorkers)

	for i, query := range queries {
		i, query := i, query
		group.Go(func() error {
			result, err := pf.Find(groupContext, grid, query.Start, query.Goal)
			if err != nil && groupContext.Err() != nil {
				return groupContext.Err()
			}
			results[i] = BatchResult{Query: query, Result: result, Err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

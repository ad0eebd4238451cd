package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Executor runs independent operations concurrently. It is scoped to one
// invocation: construct, run, discard.
type Executor struct {
	Runner CommandRunner
}

// RunAll starts every operation at once (no concurrency limit) and blocks
// until all of them have reached a terminal state, failed ones included.
// Outcomes are returned in operation order. The returned error is the
// first failure, for callers that escalate partial failure; it never
// cancels or short-circuits the other operations.
func (e *Executor) RunAll(ctx context.Context, ops []*Operation) ([]Outcome, error) {
	outcomes := make([]Outcome, len(ops))

	var g errgroup.Group
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			o := op.Run(ctx, e.Runner)
			outcomes[i] = o
			if o.Failed() {
				return errors.New(o.Summary())
			}
			return nil
		})
	}
	err := g.Wait()
	return outcomes, err
}

package sim

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/simcore/internal/dynamo"
)

// Ensemble runs independent headless copies of a scenario over a range of
// seeds. Each copy owns its own Loop, so no body set is shared.
type Ensemble struct {
	scn       Scenario
	numRuns   int
	seedStart int64
	opts      func() []Option
}

// NewEnsemble builds numRuns loops seeded seedStart, seedStart+1, ...
// opts is called once per run so accumulating metrics are not shared.
func NewEnsemble(scn Scenario, numRuns int, seedStart int64, opts func() []Option) *Ensemble {
	return &Ensemble{scn: scn, numRuns: numRuns, seedStart: seedStart, opts: opts}
}

// Run advances every copy for frames fixed steps of dt and returns the final
// snapshot of each, indexed by run.
func (e *Ensemble) Run(ctx context.Context, settings dynamo.Settings, frames int, dt time.Duration) ([]dynamo.Snapshot, error) {
	results := make([]dynamo.Snapshot, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			cfg := settings
			cfg.Seed = e.seedStart + int64(i)

			var opts []Option
			if e.opts != nil {
				opts = e.opts()
			}
			loop := New(e.scn, cfg, opts...)
			loop.Start()
			defer loop.Stop()

			for f := 0; f < frames; f++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				loop.Step(dt)
			}
			results[i] = loop.Snapshot()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

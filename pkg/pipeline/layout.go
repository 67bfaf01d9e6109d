package pipeline

import (
	"context"
	"time"

	"github.com/splotbio/splot/pkg/layout"
	"github.com/splotbio/splot/pkg/observability"
	"github.com/splotbio/splot/pkg/pool"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout runs the layout stage for a validated plan: it builds one shuffled
// pool per partition and fills the chip positions from them.
//
// Failures here are internal-consistency errors; a plan returned by
// Validate for the same input and options never produces one.
func (r *Runner) Layout(ctx context.Context, in Input, plan *Plan, opts Options) (pool.Pool, []string, error) {
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(plan.ValidCounts))

	p, seqs, err := generateLayout(in, plan, opts)

	observability.Pipeline().OnLayoutComplete(ctx, len(seqs), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return p, seqs, nil
}

func generateLayout(in Input, plan *Plan, opts Options) (pool.Pool, []string, error) {
	rng := opts.Rand
	if rng == nil {
		rng = pool.NewRand(opts.Seed)
	}

	p, err := pool.Build(in.Sequences.Sources(), plan.ValidCounts, plan.MaskLength, rng)
	if err != nil {
		return nil, nil, err
	}
	for _, st := range p.Stats(in.Sequences.Sources(), plan.MaskLength) {
		opts.Logger.Debug("extended pool",
			"partition", st.Label,
			"sources", st.Sources,
			"real", st.Real,
			"dummies", st.Dummies)
	}

	seqs, err := layout.Fill(plan.MaskedFlags, p, plan.MaskLength)
	if err != nil {
		return nil, nil, err
	}
	return p, seqs, nil
}

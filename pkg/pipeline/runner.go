package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/splotbio/splot/pkg/observability"
	"github.com/splotbio/splot/pkg/pool"
	"github.com/splotbio/splot/pkg/sequence"
)

// Runner executes layout runs.
//
// The Runner is stateless except for its logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different inputs, provided each run gets its own Options.Rand (or none).
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete validate → layout → pattern pipeline.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if in.Sequences == nil {
		in.Sequences = sequence.NewSet()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 1: Validate
	validateStart := time.Now()
	plan, err := r.Validate(ctx, in, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		MaskLength:  plan.MaskLength,
		MaskedFlags: plan.MaskedFlags,
		ValidCounts: plan.ValidCounts,
	}
	result.Stats.ValidateTime = time.Since(validateStart)
	result.Stats.SourceSequences = in.Sequences.Len()
	result.Stats.Partitions = len(in.Sequences.Labels())
	result.Stats.Defects = plan.Defects.Len()
	result.Stats.Positions = len(plan.MaskedFlags)
	result.Stats.MaskedPositions = countMasked(in.Mask, plan.MaskedFlags)

	opts.Logger.Info("validated inputs",
		"positions", result.Stats.Positions,
		"partitions", len(plan.ValidCounts),
		"masked", result.Stats.MaskedPositions,
		"mask_length", plan.MaskLength,
		"duration", result.Stats.ValidateTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	p, seqs, err := r.Layout(ctx, in, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Sequences = seqs
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Generated = len(seqs)
	result.Stats.Pools = p.Stats(in.Sequences.Sources(), plan.MaskLength)
	result.Stats.Dummies = countDummies(seqs, plan.MaskLength)

	opts.Logger.Info("filled layout",
		"sequences", len(seqs),
		"dummies", result.Stats.Dummies,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Pattern
	if opts.GeneratePattern {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		patternStart := time.Now()
		pat, data, err := r.Pattern(ctx, seqs, opts)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		result.Pattern = pat
		result.PatternData = data
		result.Stats.PatternTime = time.Since(patternStart)

		opts.Logger.Info("rendered pattern",
			"format", opts.PatternFormat,
			"grid", fmt.Sprintf("%dx%d", pat.Height(), pat.Width()),
			"duration", result.Stats.PatternTime)
	}

	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// countMasked counts positions the defect mask turned unused.
func countMasked(before, after []string) int {
	n := 0
	for i := range after {
		if after[i] != before[i] {
			n++
		}
	}
	return n
}

func countDummies(seqs []string, maskLength int) int {
	dummy := pool.Dummy(maskLength)
	n := 0
	for _, s := range seqs {
		if s == dummy {
			n++
		}
	}
	return n
}

// observeValidate emits the validate start hook and returns the matching
// completion callback.
func observeValidate(ctx context.Context, densityName string, positions int) func(problems int, err error) {
	start := time.Now()
	observability.Pipeline().OnValidateStart(ctx, densityName, positions)
	return func(problems int, err error) {
		observability.Pipeline().OnValidateComplete(ctx, problems, time.Since(start), err)
	}
}

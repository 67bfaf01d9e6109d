package pipeline

import (
	"context"
	"slices"

	"github.com/splotbio/splot/pkg/defect"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/pool"
	"github.com/splotbio/splot/pkg/sequence"
)

// Validate runs the validation stage: it resolves the mask length, applies
// the defect mask and checks that every partition can be laid out.
//
// Every problem found is reported. The returned error is an *errors.Error
// with code ErrCodeValidation whose cause joins the individual typed errors;
// use errors.Problems to list them or errors.As to pick one out.
func (r *Runner) Validate(ctx context.Context, in Input, opts Options) (*Plan, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if in.Sequences == nil {
		in.Sequences = sequence.NewSet()
	}

	d := opts.DensityModel()
	done := observeValidate(ctx, d.Name(), len(in.Mask))

	var problems []error

	if opts.ShouldCheckSource() && opts.Checker != nil {
		if err := sequence.CheckAll(in.Sequences, opts.Checker); err != nil {
			problems = append(problems, errors.Problems(err)...)
		}
	}

	if capacity := d.Capacity(opts.Rows, opts.Cols); len(in.Mask) != capacity {
		problems = append(problems, &errors.CapacityMismatchError{
			Density:  d.Name(),
			Rows:     opts.Rows,
			Cols:     opts.Cols,
			Capacity: capacity,
			MaskLen:  len(in.Mask),
		})
	}

	maxSource := in.Sequences.MaxLength()
	maskLength := opts.MaskLength
	if maskLength == 0 {
		maskLength = maxSource
		opts.Logger.Debug("mask length not set, using longest source sequence", "mask_length", maskLength)
		if maskLength == 0 {
			problems = append(problems, &errors.NoSourceSequencesError{Sequences: in.Sequences.Len()})
		}
	} else if maskLength > maxSource {
		problems = append(problems, &errors.MaskLengthExceedsSourceError{MaskLength: maskLength, MaxSource: maxSource})
	}

	defects, err := defect.NewSet(in.Defects, opts.DefectThreshold)
	if err != nil {
		problems = append(problems, errors.Problems(err)...)
		defects = nil
	}

	defective := defects.Defective(d, opts.Rows, len(in.Mask))
	masked := defect.Apply(in.Mask, defective)
	counts := pool.CountValid(masked)

	sources := in.Sequences.Sources()
	for _, label := range sortedKeys(counts) {
		if len(sources[label]) == 0 {
			problems = append(problems, &errors.PartitionNotFoundError{Label: label, Positions: counts[label]})
		}
	}
	for _, label := range sortedKeys(sources) {
		if n := len(sources[label]); n > counts[label] {
			problems = append(problems, &errors.PartitionCapacityExceededError{
				Label:     label,
				Sequences: n,
				Positions: counts[label],
			})
		}
	}

	if len(problems) > 0 {
		err := errors.Wrap(errors.ErrCodeValidation, errors.Join(problems...),
			"layout validation failed with %d problem(s)", len(problems))
		done(len(problems), err)
		return nil, err
	}
	done(0, nil)

	return &Plan{
		MaskLength:  maskLength,
		Defects:     defects,
		Defective:   defective,
		MaskedFlags: masked,
		ValidCounts: counts,
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

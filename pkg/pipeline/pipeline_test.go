package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splotbio/splot/pkg/density"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/observability"
	"github.com/splotbio/splot/pkg/pattern"
	"github.com/splotbio/splot/pkg/pool"
	"github.com/splotbio/splot/pkg/sequence"
)

func newRunner() *Runner {
	return NewRunner(nil)
}

func problemsOf(t *testing.T, err error) []error {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeValidation), "want validation error, got %v", err)
	return errors.Problems(err)
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultRows, opts.Rows)
	assert.Equal(t, DefaultCols, opts.Cols)
	assert.Equal(t, "DPI300", opts.Density)
	assert.Equal(t, FormatText, opts.PatternFormat)
	assert.Equal(t, 319, opts.DefectThreshold)
	assert.Equal(t, density.DPI300, opts.DensityModel())
	assert.True(t, opts.ShouldCheckSource())
	assert.NotNil(t, opts.Checker)
	assert.NotNil(t, opts.Logger)
	assert.Equal(t, 636*1080, opts.Capacity())
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Rows: 4, Density: "dpi150_plus"}
	require.NoError(t, opts.ValidateAndSetDefaults())
	first := opts

	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, first.Density, opts.Density)
	assert.Equal(t, "DPI150_PLUS", opts.Density)
	assert.Equal(t, 5, opts.DefectThreshold)
}

func TestOptionsRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative rows", Options{Rows: -1}, errors.ErrCodeInvalidInput},
		{"negative mask length", Options{MaskLength: -3}, errors.ErrCodeInvalidInput},
		{"negative threshold", Options{DefectThreshold: -1}, errors.ErrCodeInvalidInput},
		{"bad density", Options{Density: "DPI600"}, errors.ErrCodeUnsupportedDensity},
		{"bad range", Options{PatternRange: patternRange(4, 2)}, errors.ErrCodeInvalidRange},
		{"bad format", Options{PatternFormat: "png"}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestSkipSourceCheck(t *testing.T) {
	opts := Options{SkipSourceCheck: true}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.False(t, opts.ShouldCheckSource())
	assert.Nil(t, opts.Checker)
}

// rows=2, cols=2, DPI150, two partitions filling the chip exactly.
func TestExecuteExactFit(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{
			"A": {"AAAA", "AAAA"},
			"B": {"GGGG", "GGGG"},
		}),
		Mask: []string{"A", "A", "B", "B"},
	}
	opts := Options{Rows: 2, Cols: 2, Density: "DPI150", MaskLength: 4, Seed: 7}

	res, err := newRunner().Execute(context.Background(), in, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAAA", "AAAA", "GGGG", "GGGG"}, res.Sequences)
	assert.Equal(t, in.Mask, res.MaskedFlags)
	assert.Equal(t, map[string]int{"A": 2, "B": 2}, res.ValidCounts)
	assert.Zero(t, res.Stats.Dummies)
	assert.Equal(t, 4, res.Stats.SourceSequences)
	assert.Equal(t, 2, res.Stats.Partitions)
	assert.Nil(t, res.Pattern)
}

// A defect on nozzle 1 of a 2-row DPI150 chip hits linear indices 0 and 2,
// leaving one valid position for each of A and B. Two sources per partition
// no longer fit.
func TestExecuteDefectOverflowsBothPartitions(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{
			"A": {"AAAA", "AAAA"},
			"B": {"GGGG", "GGGG"},
		}),
		Mask:    []string{"A", "A", "B", "B"},
		Defects: []int{1},
	}
	opts := Options{Rows: 2, Cols: 2, Density: "DPI150", MaskLength: 4}

	res, err := newRunner().Execute(context.Background(), in, opts)
	assert.Nil(t, res)

	problems := problemsOf(t, err)
	require.Len(t, problems, 2)
	for i, label := range []string{"A", "B"} {
		var pe *errors.PartitionCapacityExceededError
		require.True(t, errors.As(problems[i], &pe))
		assert.Equal(t, label, pe.Label)
		assert.Equal(t, 2, pe.Sequences)
		assert.Equal(t, 1, pe.Positions)
	}
}

// On a 4-row DPI150 chip nozzle 1 hits only index 0, so the masked position
// receives exactly one dummy and A's pool shrinks to one entry.
func TestExecuteDefectLeavesOneDummy(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{
			"A": {"AAAA"},
			"B": {"GGGG", "GGGG"},
		}),
		Mask:    []string{"A", "A", "B", "B"},
		Defects: []int{1},
	}
	opts := Options{Rows: 4, Cols: 1, Density: "DPI150", MaskLength: 4}

	res, err := newRunner().Execute(context.Background(), in, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "A", "B", "B"}, res.MaskedFlags)
	assert.Equal(t, 1, res.ValidCounts["A"])
	assert.Equal(t, []string{"0000", "AAAA", "GGGG", "GGGG"}, res.Sequences)
	assert.Equal(t, 1, res.Stats.Dummies)
	assert.Equal(t, 1, res.Stats.MaskedPositions)
	assert.Equal(t, 1, res.Stats.Defects)
	assert.Equal(t, []string{"A", "A", "B", "B"}, in.Mask, "input mask must not change")
}

func TestExecuteFillsEveryPosition(t *testing.T) {
	for _, d := range density.All() {
		t.Run(d.Name(), func(t *testing.T) {
			rows, cols := 3, 3
			labels := []string{"A", "B", "C", "0"}
			mask := make([]string, d.Capacity(rows, cols))
			for i := range mask {
				mask[i] = labels[i%len(labels)]
			}
			sources := map[string][]string{
				"A": {"ACGTAC", "CCGG"},
				"B": {"TTTTTT"},
				"C": {"GATTAC", "AC"},
			}
			in := Input{Sequences: sequence.FromMap(sources), Mask: mask, Defects: []int{2}}
			opts := Options{Rows: rows, Cols: cols, Density: d.Name(), MaskLength: 4, Seed: 99}

			res, err := newRunner().Execute(context.Background(), in, opts)
			require.NoError(t, err)
			require.Len(t, res.Sequences, len(mask))

			dummy := pool.Dummy(4)
			perLabel := make(map[string]int)
			for i, flag := range res.MaskedFlags {
				got := res.Sequences[i]
				if flag == "0" {
					assert.Equal(t, dummy, got, "position %d", i)
					continue
				}
				perLabel[flag]++
				if got == dummy {
					continue
				}
				truncated := make([]string, 0, len(sources[flag]))
				for _, s := range sources[flag] {
					truncated = append(truncated, s[:min(4, len(s))])
				}
				assert.Contains(t, truncated, got, "position %d (%s)", i, flag)
			}
			assert.Equal(t, res.ValidCounts, perLabel)

			for _, st := range res.Stats.Pools {
				assert.Equal(t, res.ValidCounts[st.Label], st.Real+st.Dummies)
				assert.Equal(t, (res.ValidCounts[st.Label]/st.Sources)*st.Sources, st.Real)
			}
		})
	}
}

func TestExecuteSeedReproducible(t *testing.T) {
	rows, cols := 10, 10
	mask := make([]string, rows*cols)
	for i := range mask {
		mask[i] = "A"
	}
	toBases := strings.NewReplacer("0", "A", "1", "C")
	srcs := make([]string, 50)
	for i := range srcs {
		srcs[i] = toBases.Replace(fmt.Sprintf("%08b", i))
	}
	in := Input{Sequences: sequence.FromMap(map[string][]string{"A": srcs}), Mask: mask}

	run := func(seed uint64) []string {
		res, err := newRunner().Execute(context.Background(), in,
			Options{Rows: rows, Cols: cols, Density: "DPI150", Seed: seed})
		require.NoError(t, err)
		return res.Sequences
	}

	a1, a2, b := run(1), run(1), run(2)
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)

	sortedA, sortedB := slices.Clone(a1), slices.Clone(b)
	slices.Sort(sortedA)
	slices.Sort(sortedB)
	assert.Equal(t, sortedA, sortedB)
}

func TestExecuteMaskLength(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{"A": {"ACGTACGT", "CCC"}}),
		Mask:      []string{"A", "A", "0", "A"},
	}

	res, err := newRunner().Execute(context.Background(), in,
		Options{Rows: 2, Cols: 2, Density: "DPI150", MaskLength: 2, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.MaskLength)
	for _, s := range res.Sequences {
		assert.Len(t, s, 2)
	}

	res, err = newRunner().Execute(context.Background(), in,
		Options{Rows: 2, Cols: 2, Density: "DPI150", Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 8, res.MaskLength)
	assert.Equal(t, "00000000", res.Sequences[2])

	_, err = newRunner().Execute(context.Background(), in,
		Options{Rows: 2, Cols: 2, Density: "DPI150", MaskLength: 9})
	problems := problemsOf(t, err)
	require.Len(t, problems, 1)
	var me *errors.MaskLengthExceedsSourceError
	require.True(t, errors.As(problems[0], &me))
	assert.Equal(t, 9, me.MaskLength)
	assert.Equal(t, 8, me.MaxSource)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{
			"A": {"ACGN"},
			"B": {"ACGT", "ACGT"},
		}),
		Mask:    []string{"A", "C", "B"},
		Defects: []int{0},
	}

	_, err := newRunner().Validate(context.Background(), in, Options{Rows: 2, Cols: 2, Density: "DPI150"})
	problems := problemsOf(t, err)

	codes := make([]errors.Code, 0, len(problems))
	for _, p := range problems {
		codes = append(codes, errors.GetCode(p))
	}
	assert.ElementsMatch(t, []errors.Code{
		errors.ErrCodeInvalidSequence,
		errors.ErrCodeCapacityMismatch,
		errors.ErrCodeInvalidDefect,
		errors.ErrCodePartitionNotFound,
		errors.ErrCodePartitionCapacityExceeded,
	}, codes)

	var nf *errors.PartitionNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "C", nf.Label)

	var cm *errors.CapacityMismatchError
	require.True(t, errors.As(err, &cm))
	assert.Equal(t, 4, cm.Capacity)
	assert.Equal(t, 3, cm.MaskLen)
}

func TestValidatePartitionMissingFromMask(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{"A": {"AC"}, "Z": {"GG"}}),
		Mask:      []string{"A", "A", "A", "A"},
	}

	_, err := newRunner().Validate(context.Background(), in, Options{Rows: 2, Cols: 2, Density: "DPI150"})
	problems := problemsOf(t, err)
	require.Len(t, problems, 1)

	var pe *errors.PartitionCapacityExceededError
	require.True(t, errors.As(problems[0], &pe))
	assert.Equal(t, "Z", pe.Label)
	assert.Zero(t, pe.Positions)
}

func TestValidateNoSourceSequences(t *testing.T) {
	mask := []string{"0", "0", "0", "0"}

	tests := []struct {
		name    string
		sources *sequence.Set
		skip    bool
	}{
		{"no sequences", sequence.NewSet(), false},
		{"nil set", nil, false},
		{"only empty sequences", sequence.FromMap(map[string][]string{"A": {""}}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Rows: 2, Cols: 2, Density: "DPI150", SkipSourceCheck: tt.skip}
			_, err := newRunner().Execute(context.Background(), Input{Sequences: tt.sources, Mask: mask}, opts)

			var ns *errors.NoSourceSequencesError
			require.True(t, errors.As(err, &ns), "got %v", err)
			assert.True(t, errors.Is(err, errors.ErrCodeNoSourceSequences))
		})
	}
}

func TestOptionsRejectOversizedChip(t *testing.T) {
	opts := Options{Rows: 1 << 20, Cols: 1 << 14, Density: "DPI150", GeneratePattern: true}
	require.True(t, errors.Is(opts.ValidateAndSetDefaults(), errors.ErrCodeInvalidInput))

	_, err := newRunner().Execute(context.Background(), Input{Mask: nil}, Options{Rows: 1 << 20, Cols: 1 << 14, GeneratePattern: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestValidateSkipSourceCheck(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{"A": {"NNNN"}}),
		Mask:      []string{"A", "A", "A", "A"},
	}
	opts := Options{Rows: 2, Cols: 2, Density: "DPI150"}

	_, err := newRunner().Validate(context.Background(), in, opts)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSequence))

	opts.SkipSourceCheck = true
	plan, err := newRunner().Validate(context.Background(), in, opts)
	require.NoError(t, err)
	assert.Equal(t, 4, plan.MaskLength)
}

func TestValidateCustomChecker(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{"A": {"ACGT"}}),
		Mask:      []string{"A", "A", "A", "A"},
	}
	opts := Options{
		Rows:    2,
		Cols:    2,
		Density: "DPI150",
		Checker: sequence.CheckerFunc(func(s sequence.Sequence) error {
			return &errors.InvalidSequenceError{Label: s.Label, Sequence: s.Bases, Reason: "rejected"}
		}),
	}

	_, err := newRunner().Validate(context.Background(), in, opts)
	var se *errors.InvalidSequenceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "rejected", se.Reason)
}

func TestExecutePattern(t *testing.T) {
	in := Input{
		Sequences: sequence.FromMap(map[string][]string{
			"A": {"AAAA", "AAAA"},
			"B": {"GGGG", "GGGG"},
		}),
		Mask: []string{"A", "A", "B", "B"},
	}
	opts := Options{Rows: 2, Cols: 2, Density: "DPI150", GeneratePattern: true}

	res, err := newRunner().Execute(context.Background(), in, opts)
	require.NoError(t, err)
	require.NotNil(t, res.Pattern)
	assert.Equal(t, " AAAA GGGG\n AAAA GGGG", string(res.PatternData))

	opts.PatternFormat = FormatSVG
	res, err = newRunner().Execute(context.Background(), in, opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(res.PatternData), "<svg"))
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := Input{
		Sequences: sequence.FromMap(map[string][]string{"A": {"AC"}}),
		Mask:      []string{"A"},
	}
	_, err := newRunner().Execute(ctx, in, Options{Rows: 1, Cols: 1, Density: "DPI150"})
	assert.True(t, stderrors.Is(err, context.Canceled))
}

type countingHooks struct {
	observability.NoopPipelineHooks
	validated, laidOut, patterns int
	problems                     int
}

func (h *countingHooks) OnValidateComplete(_ context.Context, problems int, _ time.Duration, _ error) {
	h.validated++
	h.problems += problems
}

func (h *countingHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.laidOut++
}

func (h *countingHooks) OnPatternComplete(context.Context, string, int, time.Duration, error) {
	h.patterns++
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	in := Input{
		Sequences: sequence.FromMap(map[string][]string{"A": {"AC"}}),
		Mask:      []string{"A"},
	}
	opts := Options{Rows: 1, Cols: 1, Density: "DPI150", GeneratePattern: true}
	_, err := newRunner().Execute(context.Background(), in, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, hooks.validated)
	assert.Equal(t, 1, hooks.laidOut)
	assert.Equal(t, 1, hooks.patterns)

	in.Mask = []string{"B"}
	_, err = newRunner().Execute(context.Background(), in, opts)
	require.Error(t, err)
	assert.Equal(t, 2, hooks.validated)
	assert.Equal(t, 2, hooks.problems)
	assert.Equal(t, 1, hooks.laidOut)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "seqs_150DPI_out.txt", OutputName("seqs", density.DPI150))
	assert.Equal(t, "seqs_150DPI_PLUS_out.txt", OutputName("seqs", density.DPI150Plus))
	assert.Equal(t, "seqs_300DPI_out.txt", OutputName("seqs", density.DPI300))

	assert.Equal(t, "print_pattern.txt", PatternName(FormatText))
	assert.Equal(t, "print_pattern.svg", PatternName(FormatSVG))
	assert.Equal(t, "print_pattern.json", PatternName(FormatJSON))
}

func TestLoadRunWrite(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	files := Files{
		Sequences: write("flank.tsv", "ID\tSeq\nP1-1\tACGT\nP1-2\tCCGG\nP2-1\tTTAA\n"),
		Mask:      write("mask.txt", "P1\nP1\nP2\nP1\n0\nP2\n"),
		Defects:   write("defect.txt", "abc\n"),
	}
	in, err := LoadInput(files, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, in.Sequences.Len())
	assert.Len(t, in.Mask, 6)
	assert.Empty(t, in.Defects)

	opts := Options{Rows: 2, Cols: 3, Density: "DPI150", Seed: 3, GeneratePattern: true}
	res, err := newRunner().Execute(context.Background(), in, opts)
	require.NoError(t, err)

	out := filepath.Join(dir, "results")
	paths, err := WriteOutputs(res, files.Sequences, out, opts)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(out, "flank_150DPI_out.txt"),
		filepath.Join(out, "print_pattern.txt"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Len(t, lines, 6)
	assert.Equal(t, "0000", lines[4])
	assert.False(t, strings.HasSuffix(string(data), "\n"))
}

func patternRange(from, to int) pattern.Range {
	return pattern.Range{From: from, To: to}
}

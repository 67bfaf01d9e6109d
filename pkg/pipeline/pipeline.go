// Package pipeline provides the layout pipeline for splot.
//
// This package implements the complete validate → layout → pattern pipeline
// used by the CLI and the HTTP API. Centralising it keeps both entry points
// producing identical layouts for identical inputs.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: check chip capacity, mask length and per-partition
//     capacity, and apply the defect mask. Every problem is collected and
//     reported together.
//  2. Layout: extend and shuffle each partition pool, then fill the chip
//     positions in order.
//  3. Pattern: optionally project the final sequence list onto the
//     physical grid and render it.
//
// A run is all-or-nothing: when any stage fails no partial result is
// returned.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	in := pipeline.Input{Sequences: set, Mask: mask, Defects: nums}
//	opts := pipeline.Options{Rows: 318, Cols: 540, Density: "DPI300"}
//	result, err := runner.Execute(ctx, in, opts)
//	if err != nil {
//	    for _, p := range errors.Problems(err) {
//	        fmt.Println(p)
//	    }
//	}
//
// Run the validation stage alone:
//
//	plan, err := runner.Validate(ctx, in, opts)
package pipeline

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/splotbio/splot/pkg/defect"
	"github.com/splotbio/splot/pkg/density"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/pattern"
	"github.com/splotbio/splot/pkg/pool"
	"github.com/splotbio/splot/pkg/sequence"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultRows is the row count of the reference chip.
	DefaultRows = 318

	// DefaultCols is the column count of the reference chip.
	DefaultCols = 540

	// DefaultDensity is the default print density.
	DefaultDensity = "DPI300"

	// DefaultPatternFormat is the default pattern output format.
	DefaultPatternFormat = FormatText
)

// Format constants for pattern output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported pattern formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a layout run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Chip geometry
	Rows    int    `json:"rows,omitempty"`
	Cols    int    `json:"cols,omitempty"`
	Density string `json:"density,omitempty"`

	// MaskLength is the length every sequence is cut to and the length of
	// dummy sequences. 0 uses the longest source sequence.
	MaskLength int `json:"mask_length,omitempty"`

	// DefectThreshold splits defect nozzle numbers into A and B lines.
	// 0 uses defect.DefaultThreshold(Rows).
	DefectThreshold int `json:"defect_threshold,omitempty"`

	// SkipSourceCheck disables the source legality check (default: false = check).
	SkipSourceCheck bool `json:"skip_source_check,omitempty"`

	// Seed makes the shuffle reproducible. 0 draws a fresh seed.
	Seed uint64 `json:"seed,omitempty"`

	// Pattern options
	GeneratePattern bool          `json:"pattern,omitempty"`
	PatternRange    pattern.Range `json:"pattern_range,omitzero"`
	PatternFormat   string        `json:"pattern_format,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Checker sequence.Checker `json:"-"`
	Rand    *rand.Rand       `json:"-"`

	density density.Density

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Input is everything a run lays out.
type Input struct {
	Sequences *sequence.Set
	Mask      []string
	Defects   []int
}

// Plan is the outcome of a successful validation stage.
type Plan struct {
	MaskLength  int
	Defects     *defect.Set
	Defective   []bool
	MaskedFlags []string
	ValidCounts map[string]int
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// MaskLength is the mask length actually used.
	MaskLength int

	// MaskedFlags is the partition mask after defect masking.
	MaskedFlags []string

	// Sequences is the final sequence list, aligned with MaskedFlags.
	Sequences []string

	// ValidCounts is the number of valid positions per partition.
	ValidCounts map[string]int

	// Pattern is the physical grid view; nil unless requested.
	Pattern *pattern.Pattern

	// PatternData is Pattern rendered in Options.PatternFormat.
	PatternData []byte

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SourceSequences int
	Partitions      int
	Defects         int
	Positions       int
	MaskedPositions int
	Generated       int
	Dummies         int
	Pools           []pool.LabelStats

	ValidateTime time.Duration
	LayoutTime   time.Duration
	PatternTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.Density == "" {
		o.Density = DefaultDensity
	}
	if o.PatternFormat == "" {
		o.PatternFormat = DefaultPatternFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Checker == nil && !o.SkipSourceCheck {
		o.Checker = sequence.BasesChecker{}
	}

	if err := errors.ValidateDimensions(o.Rows, o.Cols); err != nil {
		return err
	}
	if err := errors.ValidateMaskLength(o.MaskLength); err != nil {
		return err
	}
	if o.DefectThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "defect threshold cannot be negative, got %d", o.DefectThreshold)
	}
	if o.DefectThreshold == 0 {
		o.DefectThreshold = defect.DefaultThreshold(o.Rows)
	}
	d, err := density.Parse(o.Density)
	if err != nil {
		return err
	}
	o.density = d
	o.Density = d.Name()
	if err := o.PatternRange.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFormat(o.PatternFormat, ValidFormats...); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// DensityModel returns the parsed density. It is nil until
// ValidateAndSetDefaults succeeds.
func (o *Options) DensityModel() density.Density {
	return o.density
}

// ShouldCheckSource reports whether source sequences are checked for
// legality.
func (o *Options) ShouldCheckSource() bool {
	return !o.SkipSourceCheck
}

// Capacity returns the chip capacity for the configured geometry.
func (o *Options) Capacity() int {
	if o.density == nil {
		return 0
	}
	return o.density.Capacity(o.Rows, o.Cols)
}

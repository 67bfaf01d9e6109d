package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/splotbio/splot/pkg/config"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/pattern"
	"github.com/splotbio/splot/pkg/pipeline"
)

// runOpts holds the flags of the run command.
type runOpts struct {
	files  pipeline.Files
	output string

	rows            int
	cols            int
	density         string
	maskLength      int
	defectThreshold int
	seed            uint64

	checkSource   bool
	noCheckSource bool

	pattern       bool
	patternBase   int
	patternRange  string
	patternFormat string

	verbose bool
}

// runCommand creates the run command for laying out a sequence file.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Lay out source sequences on the chip",
		Long: `Lay out source sequences on the chip.

Reads the source sequences (TSV or Excel), the partition mask (one label per
chip position) and an optional defect list (nozzle numbers). Every problem in
the inputs is reported at once. On success the final sequence list is written
as {input}_{density}_out.txt, plus print_pattern.{txt,json,svg} with --pattern.`,
		Example: `  # Lay out at the default density (DPI300, 318x540)
  splot run -i flank.tsv -p partition.txt -o results/

  # Masked nozzles, 150 DPI with interleaved rows, reproducible shuffle
  splot run -i flank.xlsx -p partition.txt -d defects.txt --density DPI150_PLUS --seed 42

  # Also write the first base of every position as a print pattern
  splot run -i flank.tsv -p partition.txt --pattern --pattern-base 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg); err != nil {
				return err
			}
			opts.verbose = c.Logger.GetLevel() <= LogDebug
			return c.runLayout(cmd, opts, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.files.Sequences, "input", "i", "", "source sequence file (.tsv or .xlsx)")
	f.StringVarP(&opts.files.Mask, "partition", "p", "", "partition mask file, one label per line")
	f.StringVarP(&opts.files.Defects, "defect", "d", "", "defect nozzle list file")
	f.StringVarP(&opts.output, "output", "o", "", "output directory or file path (default \"output\")")
	f.StringVar(&opts.files.Sheet, "sheet", "", "worksheet to read from Excel files (default \"flank\")")
	f.IntVar(&opts.rows, "rows", pipeline.DefaultRows, "chip rows")
	f.IntVar(&opts.cols, "cols", pipeline.DefaultCols, "chip columns")
	f.StringVar(&opts.density, "density", pipeline.DefaultDensity, "print density: "+strings.Join(densityNames(), ", "))
	f.IntVar(&opts.maskLength, "mask-length", 0, "length sequences are cut to (0 = longest source)")
	f.IntVar(&opts.defectThreshold, "defect-threshold", 0, "nozzle number splitting A and B lines (0 = rows+1)")
	f.Uint64Var(&opts.seed, "seed", 0, "shuffle seed for reproducible layouts (0 = random)")
	f.BoolVar(&opts.checkSource, "check-source", true, "reject sources with characters other than ACGT0")
	f.BoolVar(&opts.noCheckSource, "no-check-source", false, "skip the source legality check")
	f.BoolVar(&opts.pattern, "pattern", false, "also write the print pattern")
	f.IntVar(&opts.patternBase, "pattern-base", 0, "show a single base (1-based) in the pattern")
	f.StringVar(&opts.patternRange, "pattern-range", "", "show bases FROM:TO (1-based, inclusive) in the pattern")
	f.StringVar(&opts.patternFormat, "pattern-format", pipeline.DefaultPatternFormat, "pattern format: "+strings.Join(pipeline.ValidFormats, ", "))

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("partition")
	_ = cmd.MarkFlagFilename("input", "tsv", "xlsx")
	_ = cmd.MarkFlagFilename("partition", "txt")
	_ = cmd.MarkFlagFilename("defect", "txt")
	cmd.MarkFlagsMutuallyExclusive("pattern-base", "pattern-range")
	cmd.MarkFlagsMutuallyExclusive("check-source", "no-check-source")

	return cmd
}

// apply overlays the flags the user set on cfg. Flags left at their
// defaults keep the config file's values.
func (o *runOpts) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("rows") {
		cfg.Rows = o.rows
	}
	if f.Changed("cols") {
		cfg.Cols = o.cols
	}
	if f.Changed("density") {
		cfg.Density = o.density
	}
	if f.Changed("mask-length") {
		cfg.MaskLength = o.maskLength
	}
	if f.Changed("defect-threshold") {
		cfg.DefectThreshold = o.defectThreshold
	}
	if f.Changed("seed") {
		cfg.Seed = o.seed
	}
	if f.Changed("check-source") {
		cfg.CheckSource = o.checkSource
	}
	if f.Changed("no-check-source") {
		cfg.CheckSource = !o.noCheckSource
	}
	if f.Changed("output") {
		cfg.Output = o.output
	}
	if f.Changed("sheet") {
		cfg.Sheet = o.files.Sheet
	}
	if f.Changed("pattern") {
		cfg.Pattern.Enabled = o.pattern
	}
	if f.Changed("pattern-format") {
		cfg.Pattern.Format = o.patternFormat
	}

	// A base selection implies the pattern is wanted.
	switch {
	case f.Changed("pattern-base"):
		if o.patternBase < 1 {
			return errors.New(errors.ErrCodeInvalidRange, "pattern base must be at least 1, got %d", o.patternBase)
		}
		cfg.Pattern.Range = pattern.SingleBase(o.patternBase).String()
		cfg.Pattern.Enabled = true
	case f.Changed("pattern-range"):
		cfg.Pattern.Range = o.patternRange
		cfg.Pattern.Enabled = true
	}

	o.files.Sheet = cfg.Sheet
	o.output = cfg.Output
	return nil
}

// runLayout loads the inputs, runs the pipeline and writes the outputs.
func (c *CLI) runLayout(cmd *cobra.Command, opts runOpts, cfg config.Config) error {
	ctx := cmd.Context()
	logger := commandLogger(cmd)
	out := printer{w: cmd.OutOrStdout()}

	popts, err := cfg.Options()
	if err != nil {
		return err
	}
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	load := startStage(logger, "load", "input", opts.files.Sequences)
	in, err := pipeline.LoadInput(opts.files, logger)
	if err != nil {
		return load.fail(err)
	}
	load.done("loaded inputs", "sequences", in.Sequences.Len(), "positions", len(in.Mask), "defects", len(in.Defects))

	layout := startStage(logger, "layout", "density", popts.Density, "seed", popts.Seed)
	res, err := c.newRunner().Execute(ctx, in, popts)
	if err != nil {
		return layout.fail(err)
	}
	layout.done("laid out chip", "positions", res.Stats.Positions, "dummies", res.Stats.Dummies)

	write := startStage(logger, "write", "output", opts.output)
	spin := newSpinnerWithContext(ctx, "Writing outputs...")
	spin.Start()
	files, err := pipeline.WriteOutputs(res, opts.files.Sequences, opts.output, popts)
	if err != nil {
		spin.StopWithError(out, "Failed to write outputs")
		return write.fail(err)
	}
	spin.Stop()
	write.done("wrote outputs", "files", len(files))

	out.success("Laid out %s on %dx%d (%s)", opts.files.Sequences, popts.Rows, popts.Cols, popts.Density)
	out.runStats(res.Stats, opts.verbose)
	for _, f := range files {
		out.file(f)
	}
	return nil
}

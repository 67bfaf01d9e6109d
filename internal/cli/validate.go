package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splotbio/splot/pkg/config"
	"github.com/splotbio/splot/pkg/defect"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/pipeline"
	"github.com/splotbio/splot/pkg/seqio"
	"github.com/splotbio/splot/pkg/sequence"
)

// validateCommand creates the validate command for checking inputs before a run.
func (c *CLI) validateCommand() *cobra.Command {
	opts := runOpts{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check input files without laying them out",
		Long: `Check input files without laying them out.

With only --input, the source sequences are loaded and checked for illegal
characters, and the number of sources per partition is shown. Adding
--partition (and optionally --defect) runs every layout check a run would,
reporting all problems at once.`,
		Example: `  # Check a sequence file
  splot validate -i flank.tsv

  # Check that a run would succeed
  splot validate -i flank.tsv -p partition.txt -d defects.txt --density DPI150`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg); err != nil {
				return err
			}
			return c.runValidate(cmd, opts, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.files.Sequences, "input", "i", "", "source sequence file (.tsv or .xlsx)")
	f.StringVarP(&opts.files.Mask, "partition", "p", "", "partition mask file, one label per line")
	f.StringVarP(&opts.files.Defects, "defect", "d", "", "defect nozzle list file")
	f.StringVar(&opts.files.Sheet, "sheet", "", "worksheet to read from Excel files (default \"flank\")")
	f.IntVar(&opts.rows, "rows", pipeline.DefaultRows, "chip rows")
	f.IntVar(&opts.cols, "cols", pipeline.DefaultCols, "chip columns")
	f.StringVar(&opts.density, "density", pipeline.DefaultDensity, "print density: "+strings.Join(densityNames(), ", "))
	f.IntVar(&opts.maskLength, "mask-length", 0, "length sequences are cut to (0 = longest source)")
	f.IntVar(&opts.defectThreshold, "defect-threshold", 0, "nozzle number splitting A and B lines (0 = rows+1)")
	f.BoolVar(&opts.noCheckSource, "no-check-source", false, "skip the source legality check")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, opts runOpts, cfg config.Config) error {
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

	if opts.files.Mask == "" {
		if opts.files.Defects != "" {
			return errors.New(errors.ErrCodeInvalidInput, "--defect needs --partition")
		}
		seqs, err := seqio.LoadSequences(opts.files.Sequences, seqio.WithSheet(opts.files.Sheet))
		if err != nil {
			return err
		}
		if popts.ShouldCheckSource() {
			if err := sequence.CheckAll(seqs, popts.Checker); err != nil {
				return err
			}
		}
		out.success("%s: %d sequences in %d partitions", opts.files.Sequences, seqs.Len(), len(seqs.Labels()))
		out.keyValue("Longest", fmt.Sprintf("%d bases", seqs.MaxLength()))
		for _, label := range seqs.Labels() {
			out.detail("%-12s %d sources", label, len(seqs.Partition(label)))
		}
		return nil
	}

	in, err := pipeline.LoadInput(opts.files, logger)
	if err != nil {
		return err
	}
	plan, err := c.newRunner().Validate(ctx, in, popts)
	if err != nil {
		if errors.Is(err, errors.ErrCodeValidation) {
			out.error("%d problem(s) found", len(errors.Problems(err)))
		}
		return err
	}

	out.success("%s fits %dx%d (%s)", opts.files.Sequences, popts.Rows, popts.Cols, popts.Density)
	out.keyValue("Positions", fmt.Sprint(len(plan.MaskedFlags)))
	out.keyValue("Defective", fmt.Sprint(defect.Count(plan.Defective)))
	out.keyValue("Mask length", fmt.Sprint(plan.MaskLength))
	for _, label := range sortedLabels(plan.ValidCounts) {
		out.detail("%-12s %d sources for %d positions", label,
			len(in.Sequences.Partition(label)), plan.ValidCounts[label])
	}
	return nil
}

package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/splotbio/splot/pkg/buildinfo"
	"github.com/splotbio/splot/pkg/defect"
	"github.com/splotbio/splot/pkg/density"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/pipeline"
)

// infoCommand creates the info command describing the print densities.
func (c *CLI) infoCommand() *cobra.Command {
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "info [density]",
		Short: "Show chip capacity and grid size per print density",
		Long: `Show chip capacity and grid size per print density.

For a chip of the given rows and columns, lists how many positions the
partition mask must have, the nozzle line length used to map defects and the
size of the print pattern grid.`,
		Example: `  splot info
  splot info DPI150_PLUS --rows 318 --cols 540`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: densityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDimensions(rows, cols); err != nil {
				return err
			}
			ds := density.All()
			if len(args) == 1 {
				d, err := density.Parse(args[0])
				if err != nil {
					return err
				}
				ds = []density.Density{d}
			}
			printDensities(printer{w: cmd.OutOrStdout()}, ds, rows, cols)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", pipeline.DefaultRows, "chip rows")
	cmd.Flags().IntVar(&cols, "cols", pipeline.DefaultCols, "chip columns")

	return cmd
}

func printDensities(out printer, ds []density.Density, rows, cols int) {
	out.title(fmt.Sprintf("%s %s", appName, buildinfo.Short()))
	out.keyValue("Chip", fmt.Sprintf("%d rows x %d cols", rows, cols))
	out.keyValue("Threshold", fmt.Sprintf("%d (A line below, B line from)", defect.DefaultThreshold(rows)))
	for _, d := range ds {
		h, w := d.GridSize(rows, cols)
		out.newline()
		out.info("%s", StyleTitle.Render(d.Name()))
		out.keyValue("  Positions", fmt.Sprint(d.Capacity(rows, cols)))
		out.keyValue("  Nozzle line", fmt.Sprint(d.Divisor(rows)))
		out.keyValue("  Grid", fmt.Sprintf("%d x %d", h, w))
		out.keyValue("  File suffix", d.Suffix())
	}
}

func densityNames() []string {
	return density.Names()
}

func sortedLabels[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

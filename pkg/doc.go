// Package pkg provides the core libraries for splot chip layout.
//
// # Overview
//
// Splot places DNA oligo source sequences onto the print positions of an
// oligo synthesis chip. Each position belongs to a partition named in the
// partition mask. Positions driven by defective nozzles are masked out, each
// partition's sources are repeated and shuffled to fill its remaining
// positions, and the result is a final sequence list aligned with the chip
// positions, optionally projected onto the physical print grid.
//
// # Architecture
//
// The data flow through splot:
//
//	sequence table + partition mask + defect list
//	         ↓
//	    [seqio] package (load inputs)
//	         ↓
//	    [defect] package (mask positions of defective nozzles)
//	         ↓
//	    [pool] package (extend and shuffle each partition's sources)
//	         ↓
//	    [layout] package (fill positions in chip order)
//	         ↓
//	    [pattern] package (project onto the print grid)
//	         ↓
//	    sequence list + text/JSON/SVG pattern
//
// [pipeline] runs these stages for the CLI and the HTTP API.
//
// # Quick Start
//
//	in, _ := pipeline.LoadInput(pipeline.Files{
//	    Sequences: "flank.tsv",
//	    Mask:      "partition.txt",
//	    Defects:   "defects.txt",
//	}, logger)
//
//	opts := pipeline.Options{Rows: 318, Cols: 540, Density: "DPI300", GeneratePattern: true}
//	res, err := pipeline.NewRunner(logger).Execute(ctx, in, opts)
//	if err != nil {
//	    return err
//	}
//	files, _ := pipeline.WriteOutputs(res, "flank.tsv", "output/", opts)
//
// # Main Packages
//
// [density] - The three print densities and how each maps chip positions to
// nozzle lines and to the print grid.
//
// [defect] - Defective nozzle sets split into A and B lines, and masking.
//
// [pool] - Per-partition sequence pools: repeat, pad with dummies, shuffle.
//
// [layout] - Fills the masked chip positions from the pools.
//
// [pattern] - The physical print grid and its text, JSON and SVG renderings.
//
// [sequence] - Source sequences grouped by partition, and legality checks.
//
// [seqio] - Readers for TSV and Excel sequence tables, partition masks and
// defect lists, and writers for the outputs.
//
// [pipeline] - The validate → layout → pattern pipeline.
//
// [config] - The optional TOML config file.
//
// [observability] - Hooks for pipeline and HTTP events.
//
// [errors] - Error codes and the typed layout validation errors.
//
// [density]: https://pkg.go.dev/github.com/splotbio/splot/pkg/density
// [defect]: https://pkg.go.dev/github.com/splotbio/splot/pkg/defect
// [pool]: https://pkg.go.dev/github.com/splotbio/splot/pkg/pool
// [layout]: https://pkg.go.dev/github.com/splotbio/splot/pkg/layout
// [pattern]: https://pkg.go.dev/github.com/splotbio/splot/pkg/pattern
// [sequence]: https://pkg.go.dev/github.com/splotbio/splot/pkg/sequence
// [seqio]: https://pkg.go.dev/github.com/splotbio/splot/pkg/seqio
// [pipeline]: https://pkg.go.dev/github.com/splotbio/splot/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/splotbio/splot/pkg/config
// [observability]: https://pkg.go.dev/github.com/splotbio/splot/pkg/observability
// [errors]: https://pkg.go.dev/github.com/splotbio/splot/pkg/errors
package pkg

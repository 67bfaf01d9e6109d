// Package seqio reads the input files of a layout run and writes its
// results.
//
// # Inputs
//
// Sequence tables come as tab-separated text (.tsv) or Excel workbooks
// (.xlsx). Both need a header row with a Seq column. The partition of each
// row comes from, in order of preference:
//
//   - the Partition column, verbatim
//   - the ID column, up to the first '-' ("P01-001" belongs to "P01")
//   - the first column, verbatim
//
// A partition mask file lists one label per line; blank lines are skipped
// and "0" marks a position that receives no sequence. A defect file lists
// 1-based nozzle numbers separated by commas, spaces or full-width commas.
// Tokens that are not integers are skipped with a warning.
//
// # Outputs
//
// [WriteSequences] writes one sequence per line without a trailing newline,
// the format the printer driver expects. [ResolveOutputDir] decides where
// output files go and creates the directory.
package seqio

package pipeline

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/splotbio/splot/pkg/seqio"
)

// Files names the input files of a run.
type Files struct {
	Sequences string
	Mask      string
	Defects   string

	// Sheet is the worksheet read from Excel sequence files.
	Sheet string
}

// LoadInput reads all input files. Defect tokens that cannot be parsed are
// reported through logger and skipped.
func LoadInput(files Files, logger *log.Logger) (Input, error) {
	seqs, err := seqio.LoadSequences(files.Sequences, seqio.WithSheet(files.Sheet))
	if err != nil {
		return Input{}, fmt.Errorf("load sequences: %w", err)
	}
	if logger != nil {
		logger.Info("loaded sequences",
			"file", files.Sequences,
			"sequences", seqs.Len(),
			"partitions", len(seqs.Labels()),
			"max_length", seqs.MaxLength())
	}

	mask, err := seqio.ImportMask(files.Mask)
	if err != nil {
		return Input{}, fmt.Errorf("load partition mask: %w", err)
	}
	if logger != nil {
		logger.Info("loaded partition mask", "file", files.Mask, "positions", len(mask))
	}

	var defects []int
	if files.Defects != "" {
		defects, err = seqio.ImportDefects(files.Defects, logger)
		if err != nil {
			return Input{}, fmt.Errorf("load defects: %w", err)
		}
		if logger != nil {
			logger.Info("loaded defects", "file", files.Defects, "nozzles", len(defects))
		}
	}

	return Input{Sequences: seqs, Mask: mask, Defects: defects}, nil
}

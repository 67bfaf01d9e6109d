package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/splotbio/splot/pkg/density"
	"github.com/splotbio/splot/pkg/seqio"
)

// PatternBaseName is the file name, without extension, of the pattern file.
const PatternBaseName = "print_pattern"

// OutputName returns the sequence list file name for an input named base:
// "{base}_{suffix}_out.txt", where suffix identifies the density.
func OutputName(base string, d density.Density) string {
	return fmt.Sprintf("%s_%s_out.txt", base, d.Suffix())
}

// PatternName returns the pattern file name for a pattern format.
func PatternName(format string) string {
	switch format {
	case FormatJSON:
		return PatternBaseName + ".json"
	case FormatSVG:
		return PatternBaseName + ".svg"
	default:
		return PatternBaseName + ".txt"
	}
}

// WriteOutputs writes the result files for an input file into the
// directory outputPath resolves to, and returns their paths.
func WriteOutputs(res *Result, inputPath, outputPath string, opts Options) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	dir, err := seqio.ResolveOutputDir(outputPath)
	if err != nil {
		return nil, err
	}

	seqPath := filepath.Join(dir, OutputName(seqio.BaseName(inputPath), opts.DensityModel()))
	if err := seqio.ExportSequences(seqPath, res.Sequences); err != nil {
		return nil, err
	}
	files := []string{seqPath}

	if res.PatternData != nil {
		patPath := filepath.Join(dir, PatternName(opts.PatternFormat))
		if err := seqio.ExportFile(patPath, res.PatternData); err != nil {
			return nil, err
		}
		files = append(files, patPath)
	}
	return files, nil
}

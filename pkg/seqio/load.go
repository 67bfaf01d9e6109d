package seqio

import (
	"path/filepath"
	"strings"

	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/sequence"
)

// Supported sequence table extensions.
const (
	ExtTSV  = ".tsv"
	ExtXLSX = ".xlsx"
	ExtXLS  = ".xls"
)

// LoadOption configures [LoadSequences].
type LoadOption func(*loadOptions)

type loadOptions struct {
	sheet string
}

// WithSheet selects the worksheet read from Excel workbooks.
func WithSheet(name string) LoadOption {
	return func(o *loadOptions) { o.sheet = name }
}

// LoadSequences reads a sequence table, choosing the decoder from the file
// extension.
func LoadSequences(path string, opts ...LoadOption) (*sequence.Set, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtTSV:
		return ImportTSV(path)
	case ExtXLSX:
		return ImportExcel(path, o.sheet)
	case ExtXLS:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"legacy .xls workbooks are not supported, save %s as .xlsx", filepath.Base(path))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported sequence file type %q (must be one of: %s, %s)", ext, ExtTSV, ExtXLSX)
	}
}

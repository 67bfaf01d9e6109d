package seqio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/sequence"
)

// DefaultSheet is the worksheet sequence workbooks keep their table in.
const DefaultSheet = "flank"

// ReadExcel decodes the sequence table on sheet of the workbook in r. An
// empty sheet name selects [DefaultSheet].
func ReadExcel(r io.Reader, sheet string) (*sequence.Set, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed workbook")
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "workbook has no sheet %q (sheets: %v)", sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	return fromRows(rows)
}

// ImportExcel reads the sequence table on sheet of the workbook at path.
func ImportExcel(path, sheet string) (*sequence.Set, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadExcel(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

package seqio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/sequence"
)

// Column names recognised in sequence tables.
const (
	ColumnSeq       = "Seq"
	ColumnPartition = "Partition"
	ColumnID        = "ID"
)

// ReadTSV decodes a tab-separated sequence table from r.
func ReadTSV(r io.Reader) (*sequence.Set, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed TSV")
	}
	return fromRows(records)
}

// ImportTSV reads the tab-separated sequence table at path.
func ImportTSV(path string) (*sequence.Set, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// fromRows turns a header row plus data rows into a Set, applying the
// partition column rules. Rows with every cell blank are skipped.
func fromRows(rows [][]string) (*sequence.Set, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "sequence table is empty")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	seqCol := indexOf(header, ColumnSeq)
	if seqCol < 0 {
		return nil, errors.New(errors.ErrCodeColumnMissing, "no %s column in sequence table header", ColumnSeq)
	}

	labelCol, splitID := 0, false
	if i := indexOf(header, ColumnPartition); i >= 0 {
		labelCol = i
	} else if i := indexOf(header, ColumnID); i >= 0 {
		labelCol, splitID = i, true
	}

	s := sequence.NewSet()
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		label := strings.TrimSpace(cell(row, labelCol))
		if splitID {
			label, _, _ = strings.Cut(label, "-")
		}
		if err := errors.ValidatePartitionLabel(label); err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		s.Add(sequence.Sequence{Label: label, Bases: strings.TrimSpace(cell(row, seqCol))})
	}
	return s, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

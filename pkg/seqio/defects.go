package seqio

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ReadDefects reads nozzle numbers from a defect file. Tokens may be
// separated by ',', '，' or whitespace, on one line or many. Tokens that do
// not parse as integers are logged at warn level and skipped. The result is
// sorted and free of duplicates; range checks are left to defect.NewSet.
func ReadDefects(r io.Reader, logger *log.Logger) ([]int, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var out []int
	for _, line := range lines {
		for _, tok := range strings.FieldsFunc(line, isDefectSeparator) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				if logger != nil {
					logger.Warn("ignoring invalid defect position", "token", tok)
				}
				continue
			}
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// ImportDefects reads the defect file at path.
func ImportDefects(path string, logger *log.Logger) ([]int, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nums, err := ReadDefects(f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nums, nil
}

func isDefectSeparator(r rune) bool {
	switch r {
	case ',', '，', ' ', '\t':
		return true
	}
	return false
}

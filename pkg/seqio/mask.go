package seqio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/splotbio/splot/pkg/errors"
)

// ReadMask reads a partition mask: one label per non-blank line, trimmed.
func ReadMask(r io.Reader) ([]string, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "partition mask is empty")
	}
	return lines, nil
}

// ImportMask reads the partition mask file at path.
func ImportMask(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mask, err := ReadMask(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mask, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return lines, nil
}

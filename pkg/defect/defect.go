// Package defect turns a list of defective print nozzles into a per-position
// invalidity mask.
//
// Nozzle numbers are 1-based and split into two print lines by a threshold:
// numbers below the threshold belong to the A line, the rest to the B line.
// For linear index i the nozzle number is (i mod divisor) + 1, where the
// divisor comes from the print density, so the same defect list masks the
// right positions for any chip size once the divisor is recomputed.
package defect

import (
	"slices"

	"github.com/splotbio/splot/pkg/density"
	"github.com/splotbio/splot/pkg/errors"
)

// Unused is the partition label of a position that receives no sequence.
const Unused = "0"

// ReferenceThreshold is the A/B line split of the 318-row reference chip.
const ReferenceThreshold = 319

// DefaultThreshold derives the A/B line split from the chip row count. For
// the reference chip it equals [ReferenceThreshold].
func DefaultThreshold(rows int) int {
	return rows + 1
}

// Set is a defect list split into A-line and B-line nozzle numbers.
// The zero value is an empty set.
type Set struct {
	threshold int
	a         map[int]struct{}
	b         map[int]struct{}
}

// NewSet builds a Set from raw nozzle numbers. Duplicates are ignored. Every
// number must be positive; all offending numbers are reported together.
func NewSet(numbers []int, threshold int) (*Set, error) {
	s := &Set{
		threshold: threshold,
		a:         make(map[int]struct{}),
		b:         make(map[int]struct{}),
	}
	var problems []error
	for _, n := range numbers {
		if n <= 0 {
			problems = append(problems, &errors.InvalidDefectError{Number: n})
			continue
		}
		if n < threshold {
			s.a[n] = struct{}{}
		} else {
			s.b[n] = struct{}{}
		}
	}
	if len(problems) > 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefect, errors.Join(problems...), "invalid defect list")
	}
	return s, nil
}

// Threshold returns the A/B line split used by the set.
func (s *Set) Threshold() int { return s.threshold }

// A returns the sorted A-line nozzle numbers.
func (s *Set) A() []int { return sortedKeys(s.a) }

// B returns the sorted B-line nozzle numbers.
func (s *Set) B() []int { return sortedKeys(s.b) }

// Len returns the total number of distinct defective nozzles.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.a) + len(s.b)
}

// Contains reports whether nozzle pos is defective on the line the threshold
// assigns it to.
func (s *Set) Contains(pos int) bool {
	if s == nil {
		return false
	}
	if pos < s.threshold {
		_, ok := s.a[pos]
		return ok
	}
	_, ok := s.b[pos]
	return ok
}

// Defective returns, for every linear index in [0, n), whether the position
// is printed by a defective nozzle under density d on a chip with the given
// row count. n is normally the chip capacity.
func (s *Set) Defective(d density.Density, rows, n int) []bool {
	out := make([]bool, n)
	if s.Len() == 0 {
		return out
	}
	divisor := d.Divisor(rows)
	for i := range out {
		out[i] = s.Contains(i%divisor + 1)
	}
	return out
}

// Apply returns a copy of mask in which every position flagged in defective
// is forced to [Unused]. The input mask is not modified. Positions beyond
// len(defective) are copied unchanged.
func Apply(mask []string, defective []bool) []string {
	out := slices.Clone(mask)
	for i := range out {
		if i < len(defective) && defective[i] {
			out[i] = Unused
		}
	}
	return out
}

// Count returns the number of true entries in defective.
func Count(defective []bool) int {
	n := 0
	for _, d := range defective {
		if d {
			n++
		}
	}
	return n
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

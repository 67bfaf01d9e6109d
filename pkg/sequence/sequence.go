// Package sequence holds source sequences grouped by partition and the
// legality rules applied to them before layout.
package sequence

import (
	"regexp"
	"slices"

	"github.com/splotbio/splot/pkg/errors"
)

// Sequence is one row of a sequence table.
type Sequence struct {
	Label string `json:"partition"`
	Bases string `json:"seq"`
}

// Set is an ordered collection of source sequences. Within a partition the
// load order is kept, since pool extension repeats sources in that order.
type Set struct {
	order   []string
	byLabel map[string][]string
	count   int
	maxLen  int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byLabel: make(map[string][]string)}
}

// FromMap builds a Set from label-keyed lists. Labels are added in sorted
// order.
func FromMap(m map[string][]string) *Set {
	s := NewSet()
	labels := make([]string, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	for _, l := range labels {
		for _, b := range m[l] {
			s.Add(Sequence{Label: l, Bases: b})
		}
	}
	return s
}

// Add appends seq to its partition.
func (s *Set) Add(seq Sequence) {
	if _, ok := s.byLabel[seq.Label]; !ok {
		s.order = append(s.order, seq.Label)
	}
	s.byLabel[seq.Label] = append(s.byLabel[seq.Label], seq.Bases)
	s.count++
	s.maxLen = max(s.maxLen, len(seq.Bases))
}

// Len returns the total number of sequences.
func (s *Set) Len() int { return s.count }

// MaxLength returns the length of the longest sequence, 0 for an empty set.
func (s *Set) MaxLength() int { return s.maxLen }

// Labels returns partition labels in first-seen order.
func (s *Set) Labels() []string { return slices.Clone(s.order) }

// Partition returns the sequences of label in load order.
func (s *Set) Partition(label string) []string { return s.byLabel[label] }

// Sources returns the label-keyed view the pool builder consumes. The map
// shares storage with the set.
func (s *Set) Sources() map[string][]string { return s.byLabel }

// Counts returns the number of sequences per label.
func (s *Set) Counts() map[string]int {
	out := make(map[string]int, len(s.byLabel))
	for l, seqs := range s.byLabel {
		out[l] = len(seqs)
	}
	return out
}

// All returns every sequence in load order grouped by partition.
func (s *Set) All() []Sequence {
	out := make([]Sequence, 0, s.count)
	for _, l := range s.order {
		for _, b := range s.byLabel[l] {
			out = append(out, Sequence{Label: l, Bases: b})
		}
	}
	return out
}

// Checker decides whether a source sequence may be printed.
type Checker interface {
	Check(seq Sequence) error
}

// CheckerFunc adapts a function to [Checker].
type CheckerFunc func(Sequence) error

// Check calls f(seq).
func (f CheckerFunc) Check(seq Sequence) error { return f(seq) }

var basesRegex = regexp.MustCompile(`^[ACGTacgt0]+$`)

// BasesChecker accepts non-empty sequences of A, C, G, T (either case) and
// the dummy marker '0'.
type BasesChecker struct{}

// Check implements [Checker].
func (BasesChecker) Check(seq Sequence) error {
	if seq.Bases == "" {
		return &errors.InvalidSequenceError{Label: seq.Label, Sequence: seq.Bases, Reason: "empty sequence"}
	}
	if !basesRegex.MatchString(seq.Bases) {
		return &errors.InvalidSequenceError{Label: seq.Label, Sequence: seq.Bases, Reason: "only A, C, G, T and 0 are allowed"}
	}
	return nil
}

// CheckAll runs c over every sequence of s and joins the failures. A nil
// checker accepts everything.
func CheckAll(s *Set, c Checker) error {
	if c == nil {
		return nil
	}
	var problems []error
	for _, seq := range s.All() {
		if err := c.Check(seq); err != nil {
			problems = append(problems, err)
		}
	}
	if len(problems) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidSequence, errors.Join(problems...),
			"%d illegal source sequence(s)", len(problems))
	}
	return nil
}

// Package pool builds the per-partition sequence pools the grid filler
// draws from.
//
// For each partition label the pool is the source list repeated in whole
// cycles until it reaches the label's valid position count, padded with
// dummy sequences for the remainder, and then shuffled. Shuffling takes an
// explicit random source: pass [NewRand] with a fixed seed for reproducible
// layouts, or seed 0 for a fresh layout on every run.
package pool

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/splotbio/splot/pkg/defect"
	"github.com/splotbio/splot/pkg/errors"
)

// Marker is the character dummy sequences are made of.
const Marker = '0'

// Dummy returns the placeholder sequence printed on positions that carry no
// real sequence: Marker repeated maskLength times.
func Dummy(maskLength int) string {
	if maskLength <= 0 {
		return ""
	}
	return strings.Repeat(string(Marker), maskLength)
}

// Pool maps a partition label to its extended, shuffled entries.
type Pool map[string][]string

// Labels returns the pool's labels in sorted order.
func (p Pool) Labels() []string {
	labels := make([]string, 0, len(p))
	for l := range p {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// CountValid tallies positions per label, skipping [defect.Unused].
func CountValid(flags []string) map[string]int {
	counts := make(map[string]int)
	for _, f := range flags {
		if f == defect.Unused {
			continue
		}
		counts[f]++
	}
	return counts
}

// Extend grows source to exactly target entries for the partition label.
//
// The source list is repeated whole, preserving order, as many times as fits;
// the remainder is padded with Dummy(maskLength). Real sequences are cut to
// their first maskLength bases and never lengthened.
func Extend(label string, source []string, target, maskLength int) ([]string, error) {
	if target <= 0 {
		return []string{}, nil
	}
	if len(source) == 0 {
		return nil, &errors.PartitionNotFoundError{Label: label, Positions: target}
	}
	if len(source) > target {
		return nil, &errors.PartitionCapacityExceededError{Label: label, Sequences: len(source), Positions: target}
	}

	repeats := target / len(source)
	out := make([]string, 0, target)
	for range repeats {
		for _, s := range source {
			out = append(out, truncate(s, maskLength))
		}
	}
	dummy := Dummy(maskLength)
	for len(out) < target {
		out = append(out, dummy)
	}
	return out, nil
}

func truncate(s string, n int) string {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// NewRand returns a PCG-backed random source. A non-zero seed gives a
// reproducible stream; seed 0 draws the seed from the runtime's entropy.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Shuffle permutes entries in place with a Fisher-Yates shuffle.
func Shuffle(entries []string, rng *rand.Rand) {
	for i := len(entries) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
}

// Build extends and shuffles one pool per label in counts.
//
// Labels are processed in sorted order so that a seeded rng yields the same
// pool on every run. Every label that fails is reported; the returned error
// joins all of them.
func Build(sources map[string][]string, counts map[string]int, maskLength int, rng *rand.Rand) (Pool, error) {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	p := make(Pool, len(labels))
	var problems []error
	for _, label := range labels {
		entries, err := Extend(label, sources[label], counts[label], maskLength)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		Shuffle(entries, rng)
		p[label] = entries
	}
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return p, nil
}

// LabelStats describes one partition's pool.
type LabelStats struct {
	Label   string `json:"label"`
	Sources int    `json:"sources"`
	Real    int    `json:"real"`
	Dummies int    `json:"dummies"`
}

// Stats reports per-label real and dummy counts, sorted by label. Dummies
// are recognised by value, so a source sequence made only of markers is
// counted as a dummy.
func (p Pool) Stats(sources map[string][]string, maskLength int) []LabelStats {
	dummy := Dummy(maskLength)
	out := make([]LabelStats, 0, len(p))
	for _, label := range p.Labels() {
		st := LabelStats{Label: label, Sources: len(sources[label])}
		for _, e := range p[label] {
			if e == dummy {
				st.Dummies++
			} else {
				st.Real++
			}
		}
		out = append(out, st)
	}
	return out
}

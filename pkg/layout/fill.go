// Package layout assigns pool entries to chip positions.
//
// [Fill] walks the masked partition flags left to right and keeps one read
// cursor per partition label. Two positions of the same partition therefore
// always receive pool entries in pool order, which makes the walk inherently
// sequential.
package layout

import (
	"github.com/splotbio/splot/pkg/defect"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/pool"
)

// Fill produces the final sequence list, one entry per flag.
//
// Positions flagged [defect.Unused] get pool.Dummy(maskLength). Any other
// flag takes the next entry of its pool. Running past the end of a pool, or
// meeting a label with no pool at all, is an internal-consistency failure
// reported as [errors.PoolExhaustionError]; validation upstream makes it
// unreachable.
func Fill(flags []string, p pool.Pool, maskLength int) ([]string, error) {
	dummy := pool.Dummy(maskLength)
	cursor := make(map[string]int, len(p))
	out := make([]string, len(flags))

	for i, flag := range flags {
		if flag == defect.Unused {
			out[i] = dummy
			continue
		}
		entries := p[flag]
		c := cursor[flag]
		if c >= len(entries) {
			return nil, &errors.PoolExhaustionError{Label: flag, Position: i, PoolSize: len(entries)}
		}
		out[i] = entries[c]
		cursor[flag] = c + 1
	}
	return out, nil
}

// Remaining reports, per label, how many pool entries Fill would leave
// unused for flags. A consistent layout leaves none.
func Remaining(flags []string, p pool.Pool) map[string]int {
	used := pool.CountValid(flags)
	left := make(map[string]int)
	for label, entries := range p {
		if n := len(entries) - used[label]; n != 0 {
			left[label] = n
		}
	}
	return left
}

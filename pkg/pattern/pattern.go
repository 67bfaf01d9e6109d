// Package pattern re-projects a final sequence list onto the physical chip
// grid for visual inspection.
//
// [Build] walks the pattern grid of the chosen density and, for every cell
// that is a print position, looks up the sequence at the cell's linear index
// and keeps the requested base range of it. The resulting [Pattern] is
// rendered by the sinks in this package: [RenderText] reproduces the fixed
// width text layout, [RenderJSON] and [RenderSVG] serve tooling and review.
package pattern

import (
	"strconv"
	"strings"

	"github.com/splotbio/splot/pkg/density"
	"github.com/splotbio/splot/pkg/errors"
)

// Range selects bases From..To (1-based, inclusive) of every sequence.
// The zero Range selects the whole sequence.
type Range struct {
	From int `json:"from" toml:"from"`
	To   int `json:"to" toml:"to"`
}

// SingleBase selects only base n of each sequence.
func SingleBase(n int) Range {
	return Range{From: n, To: n}
}

// ParseRange parses "FROM:TO" or a single base "N". The empty string is the
// zero Range.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, nil
	}
	fromStr, toStr, found := strings.Cut(s, ":")
	from, err := strconv.Atoi(strings.TrimSpace(fromStr))
	if err != nil {
		return Range{}, errors.New(errors.ErrCodeInvalidRange, "invalid base range %q (want FROM:TO)", s)
	}
	to := from
	if found {
		if to, err = strconv.Atoi(strings.TrimSpace(toStr)); err != nil {
			return Range{}, errors.New(errors.ErrCodeInvalidRange, "invalid base range %q (want FROM:TO)", s)
		}
	}
	r := Range{From: from, To: to}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// String formats r as "FROM:TO", or "" for the zero Range.
func (r Range) String() string {
	if r.IsZero() {
		return ""
	}
	return strconv.Itoa(r.From) + ":" + strconv.Itoa(r.To)
}

// IsZero reports whether r selects the whole sequence.
func (r Range) IsZero() bool { return r.From == 0 && r.To == 0 }

// Len returns the number of bases r selects.
func (r Range) Len() int { return r.To - r.From + 1 }

// Validate checks r is a usable range.
func (r Range) Validate() error {
	return errors.ValidateBaseRange(r.From, r.To)
}

// resolve turns the zero range into the full length of the first sequence.
func (r Range) resolve(seqs []string) Range {
	if !r.IsZero() {
		return r
	}
	n := 1
	if len(seqs) > 0 && len(seqs[0]) > 0 {
		n = len(seqs[0])
	}
	return Range{From: 1, To: n}
}

// slice cuts r out of s, clamped to the bases s actually has.
func (r Range) slice(s string) string {
	start := r.From - 1
	if start >= len(s) {
		return ""
	}
	end := min(start+r.Len(), len(s))
	return s[start:end]
}

// Cell is one physical grid cell.
type Cell struct {
	// Valid is false for cells that are not print positions (the gaps of the
	// DPI150_PLUS diagonal pattern).
	Valid bool `json:"valid"`

	// Pos is the linear index printed at this cell. Meaningless when !Valid.
	Pos int `json:"pos"`

	// Text is the selected base range of the sequence at Pos.
	Text string `json:"text,omitempty"`
}

// Pattern is the physical view of a layout, indexed [row][col].
type Pattern struct {
	Density string   `json:"density"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Range   Range    `json:"range"`
	Cells   [][]Cell `json:"cells"`
}

// Height returns the number of grid rows.
func (p *Pattern) Height() int { return len(p.Cells) }

// Width returns the number of grid columns.
func (p *Pattern) Width() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return len(p.Cells[0])
}

// Build projects seqs (in linear order) onto the pattern grid of d.
//
// Cells whose linear index falls beyond len(seqs) show the range filled with
// '0', matching how unprinted positions appear in the sequence list.
func Build(seqs []string, rows, cols int, d density.Density, r Range) (*Pattern, error) {
	if err := errors.ValidateDimensions(rows, cols); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r = r.resolve(seqs)
	blank := strings.Repeat("0", r.Len())

	h, w := d.GridSize(rows, cols)
	cells := make([][]Cell, h)
	for i := range cells {
		row := make([]Cell, w)
		for j := range row {
			pos, ok := d.Position(rows, cols, i, j)
			if !ok {
				continue
			}
			text := blank
			if pos < len(seqs) {
				text = r.slice(seqs[pos])
			}
			row[j] = Cell{Valid: true, Pos: pos, Text: text}
		}
		cells[i] = row
	}

	return &Pattern{
		Density: d.Name(),
		Rows:    rows,
		Cols:    cols,
		Range:   r,
		Cells:   cells,
	}, nil
}

// Linear returns the cell texts in linear-index order, the inverse view of
// the grid. Its length is the number of valid cells.
func (p *Pattern) Linear() []string {
	n := 0
	for _, row := range p.Cells {
		for _, c := range row {
			if c.Valid {
				n++
			}
		}
	}
	out := make([]string, n)
	for _, row := range p.Cells {
		for _, c := range row {
			if c.Valid && c.Pos < n {
				out[c.Pos] = c.Text
			}
		}
	}
	return out
}

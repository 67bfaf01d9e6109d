package density

import (
	"strings"

	"github.com/splotbio/splot/pkg/errors"
)

// Density is one of the supported print densities. The set of
// implementations is closed; use [DPI150], [DPI150Plus] or [DPI300].
type Density interface {
	// Name is the canonical token, e.g. "DPI150_PLUS".
	Name() string

	// Suffix is the spelling used in output file names, e.g. "150DPI_PLUS".
	Suffix() string

	// Capacity returns the number of addressable print positions.
	Capacity(rows, cols int) int

	// Divisor returns the nozzle line length in linear-index space.
	Divisor(rows int) int

	// GridSize returns the height and width of the physical pattern grid.
	GridSize(rows, cols int) (height, width int)

	// Valid reports whether the pattern grid cell (row, col) is a print
	// position. Coordinates are not bounds-checked.
	Valid(row, col int) bool

	// Position maps a pattern grid cell to its linear index. ok is false for
	// cells outside the grid or cells that are not print positions.
	Position(rows, cols, i, j int) (pos int, ok bool)

	// Coord maps a linear index back to its pattern grid cell. ok is false
	// when pos is outside [0, Capacity).
	Coord(rows, cols, pos int) (i, j int, ok bool)

	density()
}

// Variants, in the order they are listed to users.
var (
	DPI150     Density = dpi150{}
	DPI150Plus Density = dpi150Plus{}
	DPI300     Density = dpi300{}
)

// All returns every supported density.
func All() []Density {
	return []Density{DPI150, DPI150Plus, DPI300}
}

// Names returns the canonical tokens of every supported density.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name()
	}
	return names
}

// Parse resolves a density token. Canonical names and file-name suffixes are
// accepted case-insensitively; anything else yields an
// [errors.UnsupportedDensityError].
func Parse(token string) (Density, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	for _, d := range All() {
		if t == d.Name() || t == d.Suffix() {
			return d, nil
		}
	}
	return nil, &errors.UnsupportedDensityError{Token: token}
}

// MustParse is like Parse but panics on an unknown token.
func MustParse(token string) Density {
	d, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return d
}

func inGrid(d Density, rows, cols, i, j int) bool {
	h, w := d.GridSize(rows, cols)
	return i >= 0 && i < h && j >= 0 && j < w
}

// =============================================================================
// DPI150
// =============================================================================

type dpi150 struct{}

func (dpi150) density()       {}
func (dpi150) Name() string   { return "DPI150" }
func (dpi150) Suffix() string { return "150DPI" }

func (dpi150) Capacity(rows, cols int) int { return rows * cols }
func (dpi150) Divisor(rows int) int        { return rows }
func (dpi150) Valid(row, col int) bool     { return true }

func (dpi150) GridSize(rows, cols int) (int, int) { return rows, cols }

func (d dpi150) Position(rows, cols, i, j int) (int, bool) {
	if !inGrid(d, rows, cols, i, j) {
		return 0, false
	}
	return j*rows + rows - i - 1, true
}

func (d dpi150) Coord(rows, cols, pos int) (int, int, bool) {
	if pos < 0 || pos >= d.Capacity(rows, cols) {
		return 0, 0, false
	}
	return rows - 1 - pos%rows, pos / rows, true
}

// =============================================================================
// DPI150_PLUS
// =============================================================================

// dpi150Plus interleaves a "straight" column (even grid columns, rows dots)
// with a "diagonal" column (odd grid columns, rows-1 dots) offset by half a
// pitch. One straight/diagonal pair occupies 2*rows-1 linear indices.
type dpi150Plus struct{}

func (dpi150Plus) density()       {}
func (dpi150Plus) Name() string   { return "DPI150_PLUS" }
func (dpi150Plus) Suffix() string { return "150DPI_PLUS" }

func (dpi150Plus) Capacity(rows, cols int) int {
	return rows*cols + (rows-1)*(cols-1)
}

func (dpi150Plus) Divisor(rows int) int { return 2*rows - 1 }

func (dpi150Plus) Valid(row, col int) bool { return row%2 == col%2 }

func (dpi150Plus) GridSize(rows, cols int) (int, int) { return 2*rows - 1, 2*cols - 1 }

func (d dpi150Plus) Position(rows, cols, i, j int) (int, bool) {
	if !inGrid(d, rows, cols, i, j) || !d.Valid(i, j) {
		return 0, false
	}
	base := (j / 2) * (2*rows - 1)
	if j%2 == 0 {
		return base + rows - i/2 - 1, true
	}
	return base + 2*rows - 1 - i/2 - 1, true
}

func (d dpi150Plus) Coord(rows, cols, pos int) (int, int, bool) {
	if pos < 0 || pos >= d.Capacity(rows, cols) {
		return 0, 0, false
	}
	block := 2*rows - 1
	pair, off := pos/block, pos%block
	if off < rows {
		return 2 * (rows - 1 - off), 2 * pair, true
	}
	return 2*(2*rows-2-off) + 1, 2*pair + 1, true
}

// =============================================================================
// DPI300
// =============================================================================

type dpi300 struct{}

func (dpi300) density()       {}
func (dpi300) Name() string   { return "DPI300" }
func (dpi300) Suffix() string { return "300DPI" }

func (dpi300) Capacity(rows, cols int) int { return (2 * rows) * (2 * cols) }
func (dpi300) Divisor(rows int) int        { return 2 * rows }
func (dpi300) Valid(row, col int) bool     { return true }

func (dpi300) GridSize(rows, cols int) (int, int) { return 2 * rows, 2 * cols }

func (d dpi300) Position(rows, cols, i, j int) (int, bool) {
	if !inGrid(d, rows, cols, i, j) {
		return 0, false
	}
	return (2*rows)*(j+1) - i - 1, true
}

func (d dpi300) Coord(rows, cols, pos int) (int, int, bool) {
	if pos < 0 || pos >= d.Capacity(rows, cols) {
		return 0, 0, false
	}
	h := 2 * rows
	return h - 1 - pos%h, pos / h, true
}

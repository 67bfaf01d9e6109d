package density

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splotbio/splot/pkg/errors"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		d          Density
		rows, cols int
		want       int
	}{
		{DPI150, 4, 4, 16},
		{DPI150Plus, 4, 4, 25},
		{DPI300, 4, 4, 64},
		{DPI150, 318, 540, 171720},
		{DPI150Plus, 318, 540, 171720 + 317*539},
		{DPI300, 318, 540, 636 * 1080},
		{DPI150Plus, 1, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.d.Name(), func(t *testing.T) {
			if got := tt.d.Capacity(tt.rows, tt.cols); got != tt.want {
				t.Errorf("Capacity(%d, %d) = %d, want %d", tt.rows, tt.cols, got, tt.want)
			}
		})
	}
}

func TestDivisor(t *testing.T) {
	assert.Equal(t, 318, DPI150.Divisor(318))
	assert.Equal(t, 635, DPI150Plus.Divisor(318))
	assert.Equal(t, 636, DPI300.Divisor(318))
}

func TestValid(t *testing.T) {
	for _, d := range []Density{DPI150, DPI300} {
		assert.True(t, d.Valid(0, 1), d.Name())
		assert.True(t, d.Valid(3, 2), d.Name())
	}

	assert.True(t, DPI150Plus.Valid(0, 0))
	assert.True(t, DPI150Plus.Valid(1, 3))
	assert.False(t, DPI150Plus.Valid(0, 1))
	assert.False(t, DPI150Plus.Valid(2, 3))
}

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  Density
	}{
		{"DPI150", DPI150},
		{"dpi150_plus", DPI150Plus},
		{" DPI300 ", DPI300},
		{"150DPI", DPI150},
		{"150DPI_PLUS", DPI150Plus},
		{"300dpi", DPI300},
	}

	for _, tt := range tests {
		got, err := Parse(tt.token)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}
}

func TestParseUnsupported(t *testing.T) {
	for _, token := range []string{"", "DPI600", "DPI150PLUS", "150"} {
		_, err := Parse(token)
		require.Error(t, err, token)

		var ude *errors.UnsupportedDensityError
		require.True(t, stderrors.As(err, &ude), "%q: want UnsupportedDensityError, got %T", token, err)
		assert.Equal(t, token, ude.Token)
		assert.Equal(t, errors.ErrCodeUnsupportedDensity, errors.GetCode(err))
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("bogus") })
	assert.Equal(t, DPI300, MustParse("DPI300"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"DPI150", "DPI150_PLUS", "DPI300"}, Names())
}

func TestPositionFormulas(t *testing.T) {
	// Spot checks against the closed-form laws for a 3x2 chip.
	tests := []struct {
		d    Density
		i, j int
		want int
	}{
		{DPI150, 2, 0, 0},     // bottom of first column
		{DPI150, 0, 0, 2},     // top of first column
		{DPI150, 0, 1, 5},     // top of second column
		{DPI150Plus, 4, 0, 0}, // bottom straight dot
		{DPI150Plus, 0, 0, 2}, // top straight dot
		{DPI150Plus, 3, 1, 3}, // bottom diagonal dot
		{DPI150Plus, 1, 1, 4}, // top diagonal dot
		{DPI150Plus, 0, 2, 7}, // top of second straight column
		{DPI300, 5, 0, 0},
		{DPI300, 0, 3, 23},
	}

	for _, tt := range tests {
		got, ok := tt.d.Position(3, 2, tt.i, tt.j)
		require.True(t, ok, "%s (%d,%d)", tt.d.Name(), tt.i, tt.j)
		assert.Equal(t, tt.want, got, "%s (%d,%d)", tt.d.Name(), tt.i, tt.j)
	}
}

func TestPositionRejects(t *testing.T) {
	_, ok := DPI150Plus.Position(3, 2, 0, 1)
	assert.False(t, ok, "parity mismatch")

	_, ok = DPI150.Position(3, 2, 3, 0)
	assert.False(t, ok, "row out of grid")

	_, ok = DPI300.Position(3, 2, 0, -1)
	assert.False(t, ok, "negative column")

	_, _, ok = DPI150.Coord(3, 2, 6)
	assert.False(t, ok, "pos == capacity")
}

// TestPositionBijection checks, for every density and a spread of chip sizes,
// that Position maps the valid grid cells onto [0, Capacity) exactly once and
// that Coord inverts it.
func TestPositionBijection(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 4}, {2, 2}, {3, 5}, {4, 4}, {7, 3}, {10, 12}}

	for _, d := range All() {
		for _, sz := range sizes {
			rows, cols := sz[0], sz[1]
			capacity := d.Capacity(rows, cols)
			seen := make([]bool, capacity)
			h, w := d.GridSize(rows, cols)

			valid := 0
			for i := 0; i < h; i++ {
				for j := 0; j < w; j++ {
					pos, ok := d.Position(rows, cols, i, j)
					if !d.Valid(i, j) {
						require.False(t, ok, "%s %dx%d (%d,%d) should be invalid", d.Name(), rows, cols, i, j)
						continue
					}
					require.True(t, ok, "%s %dx%d (%d,%d)", d.Name(), rows, cols, i, j)
					require.GreaterOrEqual(t, pos, 0)
					require.Less(t, pos, capacity, "%s %dx%d (%d,%d)", d.Name(), rows, cols, i, j)
					require.False(t, seen[pos], "%s %dx%d: pos %d hit twice", d.Name(), rows, cols, pos)
					seen[pos] = true
					valid++

					gi, gj, ok := d.Coord(rows, cols, pos)
					require.True(t, ok)
					require.Equal(t, [2]int{i, j}, [2]int{gi, gj}, "%s %dx%d round trip of pos %d", d.Name(), rows, cols, pos)
				}
			}
			require.Equal(t, capacity, valid, "%s %dx%d valid cell count", d.Name(), rows, cols)
		}
	}
}

// Package density models the three print densities a synthesis chip supports.
//
// A [Density] is a closed set of variants: [DPI150], [DPI150Plus] and [DPI300].
// Each variant carries every density-specific law the layout engine needs, so
// capacity checks, defect masking and pattern mapping cannot drift apart:
//
//   - Capacity: how many addressable print positions a rows x cols chip has
//   - Divisor: the length of one nozzle line in linear-index space; defect
//     masking numbers nozzles as (index mod divisor) + 1
//   - GridSize and Valid: the physical pattern grid and which of its cells
//     hold a print position (DPI150_PLUS prints a diagonal dot pattern, so
//     only cells whose row and column parities match are valid)
//   - Position and Coord: the bijection between valid grid cells and linear
//     indices in [0, Capacity)
//
// # Linear order
//
// Linear indices run column by column. Within a column the index grows from
// the bottom of the chip to the top, which is why the physical row i appears
// as rows - i - 1 in the position laws.
//
// # Usage
//
//	d, err := density.Parse("DPI150_PLUS")
//	if err != nil {
//	    return err
//	}
//	n := d.Capacity(318, 540)
//	pos, ok := d.Position(318, 540, i, j)
package density

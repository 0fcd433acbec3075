package segment

import (
	"github.com/ironsheep/image-segment-mcp/internal/pixel"
	"github.com/ironsheep/image-segment-mcp/internal/raster"
)

// Average returns the mean color of seq. Each channel is sum/count with
// integer division, so fractions are truncated: (1,1,1) and (2,2,2)
// average to (1,1,1).
//
// Returns pixel.ErrEmptyContainer for an empty sequence.
func Average(seq *pixel.Sequence) (raster.ColorRGB, error) {
	n := seq.Len()
	if n == 0 {
		return raster.ColorRGB{}, pixel.ErrEmptyContainer
	}

	var red, green, blue int
	it := seq.Iterator()
	for it.Next() {
		r := it.Record()
		red += r.Red
		green += r.Green
		blue += r.Blue
	}
	if err := it.Err(); err != nil {
		return raster.ColorRGB{}, err
	}

	return raster.ColorRGB{
		R: uint8(red / n),
		G: uint8(green / n),
		B: uint8(blue / n),
	}, nil
}

// Paint writes c to every location recorded in seq.
func Paint(dst raster.Writer, seq *pixel.Sequence, c raster.ColorRGB) error {
	for r := range seq.All() {
		if err := dst.SetColorAt(r.Row, r.Col, c); err != nil {
			return err
		}
	}
	return nil
}

package segment

import (
	"fmt"

	"github.com/ironsheep/image-segment-mcp/internal/raster"
)

// DefaultOutlineColor is the boundary color used by the command line tools.
var DefaultOutlineColor = raster.ColorRGB{R: 255}

// Labels returns the region index of every pixel in row-major order, so the
// label of (row, col) is at row*Cols+col.
//
// Union holds each region's pixels contiguously in region order, which lets
// the labels be rebuilt without a second flood fill.
func (r *Result) Labels() ([]int, error) {
	rows, cols := r.Output.Rows(), r.Output.Cols()
	labels := make([]int, rows*cols)

	records := r.Union.Records()
	pos := 0
	for _, region := range r.Regions {
		if pos+region.Size > len(records) {
			return nil, fmt.Errorf("union holds %d pixels, regions need more", len(records))
		}
		for _, rec := range records[pos : pos+region.Size] {
			if !r.Output.InBounds(rec.Row, rec.Col) {
				return nil, fmt.Errorf("region %d pixel (%d,%d): %w", region.Index, rec.Row, rec.Col, raster.ErrIndexOutOfRange)
			}
			labels[rec.Row*cols+rec.Col] = region.Index
		}
		pos += region.Size
	}
	return labels, nil
}

// Outline returns a copy of res.Output with region boundaries drawn in c.
//
// A pixel is a boundary pixel when its right or lower neighbor belongs to a
// different region, which gives one pixel wide lines.
func Outline(res *Result, c raster.ColorRGB) (*raster.Raster, error) {
	labels, err := res.Labels()
	if err != nil {
		return nil, err
	}

	out := res.Output.Clone()
	rows, cols := out.Rows(), out.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			l := labels[row*cols+col]
			edge := (col+1 < cols && labels[row*cols+col+1] != l) ||
				(row+1 < rows && labels[(row+1)*cols+col] != l)
			if edge {
				if err := out.SetColorAt(row, col, c); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

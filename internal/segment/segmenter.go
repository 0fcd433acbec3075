package segment

import (
	"fmt"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
	"github.com/ironsheep/image-segment-mcp/internal/raster"
)

// Region summarizes one region found by a segmentation run.
type Region struct {
	// Index is the region's position in scan order, starting at 0.
	Index int `json:"index"`

	// Seed is the first pixel of the region; its color was the anchor.
	Seed pixel.Record `json:"seed"`

	// Size is the number of pixels in the region.
	Size int `json:"size"`

	// Average is the truncated mean color written to the output.
	Average raster.ColorRGB `json:"average"`
}

// Result is the outcome of Segmenter.Segment.
type Result struct {
	// Output has the source's dimensions; every pixel holds its region's
	// average color.
	Output *raster.Raster

	// Regions lists regions in the order they were found.
	Regions []Region

	// Union holds every pixel of every region.
	Union *pixel.Sequence
}

// RegionCount returns the number of regions found.
func (r *Result) RegionCount() int {
	return len(r.Regions)
}

// GlobalAverage returns the truncated mean color over all pixels of all
// regions. For a zero-area source it returns pixel.ErrEmptyContainer.
func (r *Result) GlobalAverage() (raster.ColorRGB, error) {
	return Average(r.Union)
}

// Segmenter partitions a raster into regions and replaces each region with
// its average color. A Segmenter holds no per-run state and can be reused.
type Segmenter struct {
	grower Grower
}

// New returns a Segmenter that grows regions with g.
func New(g Grower) *Segmenter {
	return &Segmenter{grower: g}
}

// Segment runs region growing over every pixel of src.
//
// Pixels are scanned in row-major order. Each pixel not yet claimed seeds a
// new region; the region is averaged, painted into the output and merged
// into the result's union. src is never modified. Every pixel ends up in
// exactly one region; a scan that leaves a pixel unclaimed is an error.
func (s *Segmenter) Segment(src raster.Reader) (*Result, error) {
	rows, cols := src.Rows(), src.Cols()

	out, err := raster.New(rows, cols, raster.Black)
	if err != nil {
		return nil, err
	}
	claims, err := raster.NewClaimRaster(rows, cols)
	if err != nil {
		return nil, err
	}

	res := &Result{Output: out, Union: pixel.NewSequence()}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			claimed, err := claims.IsClaimed(row, col)
			if err != nil {
				return nil, err
			}
			if claimed {
				continue
			}

			region, err := s.grower.Grow(row, col, src, claims)
			if err != nil {
				return nil, fmt.Errorf("failed to grow region at (%d,%d): %w", row, col, err)
			}

			avg, err := Average(region)
			if err != nil {
				return nil, fmt.Errorf("region at (%d,%d): %w", row, col, err)
			}
			if err := Paint(out, region, avg); err != nil {
				return nil, err
			}

			seed, _ := region.Peek()
			res.Regions = append(res.Regions, Region{
				Index:   len(res.Regions),
				Seed:    seed,
				Size:    region.Len(),
				Average: avg,
			})
			res.Union.Merge(region)
		}
	}

	if n := claims.ClaimedCount(); n != rows*cols || res.Union.Len() != n {
		return nil, fmt.Errorf("scan claimed %d of %d pixels, union holds %d", n, rows*cols, res.Union.Len())
	}
	return res, nil
}

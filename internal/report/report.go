// Package report turns a segmentation result into human readable text and
// charts.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/image-segment-mcp/internal/raster"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// DefaultTopRegions is the number of largest regions listed by Summarize
// when the caller asks for a non-positive count.
const DefaultTopRegions = 5

// RegionSummary describes one region in a report.
type RegionSummary struct {
	Index   int             `json:"index"`
	Row     int             `json:"seed_row"`
	Col     int             `json:"seed_col"`
	Size    int             `json:"size"`
	Average raster.ColorRGB `json:"average"`
	Hex     string          `json:"hex"`

	// DeltaE is the CIEDE2000 distance between this region's average and
	// the global average.
	DeltaE float64 `json:"delta_e"`
}

// Summary aggregates the statistics of a segmentation run.
type Summary struct {
	Rows        int `json:"rows"`
	Cols        int `json:"cols"`
	RegionCount int `json:"region_count"`

	// UnionSize is the number of pixels in the global union. It equals
	// Rows*Cols after a complete run.
	UnionSize int `json:"union_size"`

	GlobalAverage raster.ColorRGB `json:"global_average"`
	GlobalHex     string          `json:"global_hex"`

	MeanRegionSize   float64 `json:"mean_region_size"`
	StdDevRegionSize float64 `json:"stddev_region_size"`
	MedianRegionSize float64 `json:"median_region_size"`
	LargestRegion    int     `json:"largest_region"`

	// SingletonRegions counts regions of exactly one pixel.
	SingletonRegions int `json:"singleton_regions"`

	// TopRegions lists the largest regions, biggest first. Ties keep scan
	// order.
	TopRegions []RegionSummary `json:"top_regions"`
}

// Summarize computes a Summary for res, listing the top largest regions.
//
// A run over a zero-area raster has no global average; Summarize returns
// the error from Result.GlobalAverage (pixel.ErrEmptyContainer).
func Summarize(res *segment.Result, top int) (*Summary, error) {
	global, err := res.GlobalAverage()
	if err != nil {
		return nil, fmt.Errorf("failed to compute global average: %w", err)
	}

	s := &Summary{
		Rows:          res.Output.Rows(),
		Cols:          res.Output.Cols(),
		RegionCount:   res.RegionCount(),
		UnionSize:     res.Union.Len(),
		GlobalAverage: global,
		GlobalHex:     global.Hex(),
	}

	sizes := make([]float64, len(res.Regions))
	for i, r := range res.Regions {
		sizes[i] = float64(r.Size)
		if r.Size > s.LargestRegion {
			s.LargestRegion = r.Size
		}
		if r.Size == 1 {
			s.SingletonRegions++
		}
	}
	s.MeanRegionSize = stat.Mean(sizes, nil)
	if len(sizes) > 1 {
		s.StdDevRegionSize = stat.StdDev(sizes, nil)
	}
	sort.Float64s(sizes)
	s.MedianRegionSize = stat.Quantile(0.5, stat.Empirical, sizes, nil)

	s.TopRegions = LargestRegions(res, top)
	for i := range s.TopRegions {
		s.TopRegions[i].DeltaE = s.TopRegions[i].Average.DeltaE(global)
	}

	return s, nil
}

// LargestRegions returns up to n regions of res ordered by size, largest
// first. DeltaE is left zero. A non-positive n means DefaultTopRegions.
func LargestRegions(res *segment.Result, n int) []RegionSummary {
	if n <= 0 {
		n = DefaultTopRegions
	}
	regions := make([]segment.Region, len(res.Regions))
	copy(regions, res.Regions)
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Size > regions[j].Size
	})
	if len(regions) > n {
		regions = regions[:n]
	}

	out := make([]RegionSummary, len(regions))
	for i, r := range regions {
		out[i] = RegionSummary{
			Index:   r.Index,
			Row:     r.Seed.Row,
			Col:     r.Seed.Col,
			Size:    r.Size,
			Average: r.Average,
			Hex:     r.Average.Hex(),
		}
	}
	return out
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// Write prints s to w. With styled set, headings and values are colored for
// a terminal; otherwise the output is plain text.
func Write(w io.Writer, s *Summary, styled bool) error {
	heading := func(str string) string { return str }
	value := func(str string) string { return str }
	if styled {
		heading = func(str string) string { return headingStyle.Render(str) }
		value = func(str string) string { return valueStyle.Render(str) }
	}

	lines := []string{
		heading("Segmentation report"),
		fmt.Sprintf("Image: %s rows by %s columns",
			value(fmt.Sprint(s.Rows)), value(fmt.Sprint(s.Cols))),
		fmt.Sprintf("Total number of segments found: %s", value(fmt.Sprint(s.RegionCount))),
		fmt.Sprintf("Total number of pixels in merged group: %s", value(fmt.Sprint(s.UnionSize))),
		fmt.Sprintf("Average color of the merged group: %s (%s)",
			value(s.GlobalAverage.String()), value(s.GlobalHex)),
		fmt.Sprintf("Region size: mean %.2f, stddev %.2f, median %.0f, largest %d, single-pixel %d",
			s.MeanRegionSize, s.StdDevRegionSize, s.MedianRegionSize, s.LargestRegion, s.SingletonRegions),
	}
	if len(s.TopRegions) > 0 {
		lines = append(lines, "", heading("Largest regions"))
		for _, r := range s.TopRegions {
			lines = append(lines, fmt.Sprintf("  #%-5d seed (%d,%d)  %8d px  %s  dE %.3f",
				r.Index, r.Row, r.Col, r.Size, r.Hex, r.DeltaE))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

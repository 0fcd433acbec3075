package report

import (
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

const (
	chartHeight   = 600
	chartMinWidth = 800
	barWidth      = 50
	barSpacing    = 20
)

// SizeBucket counts regions whose size falls in [Min, Max].
type SizeBucket struct {
	Min, Max int
	Count    int
}

// Label renders the bucket range, e.g. "1" or "4-7".
func (b SizeBucket) Label() string {
	if b.Min == b.Max {
		return fmt.Sprint(b.Min)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// SizeHistogram buckets region sizes by powers of two: 1, 2-3, 4-7, ...
// Buckets between the smallest and largest populated one are included even
// when empty.
func SizeHistogram(res *segment.Result) []SizeBucket {
	if len(res.Regions) == 0 {
		return nil
	}
	counts := make(map[int]int)
	hi := 0
	for _, r := range res.Regions {
		k := bits.Len(uint(r.Size)) - 1
		counts[k]++
		if k > hi {
			hi = k
		}
	}
	buckets := make([]SizeBucket, 0, hi+1)
	for k := 0; k <= hi; k++ {
		buckets = append(buckets, SizeBucket{Min: 1 << k, Max: 1<<(k+1) - 1, Count: counts[k]})
	}
	return buckets
}

// WriteHistogram renders a PNG bar chart of region sizes to w.
func WriteHistogram(w io.Writer, res *segment.Result) error {
	buckets := SizeHistogram(res)
	if len(buckets) == 0 {
		return errors.New("no regions to chart")
	}

	maxCount := 0
	bars := make([]chart.Value, len(buckets))
	for i, b := range buckets {
		bars[i] = chart.Value{Label: b.Label(), Value: float64(b.Count)}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	width := len(bars)*(barWidth+barSpacing) + 200
	if width < chartMinWidth {
		width = chartMinWidth
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Region sizes (%d regions)", res.RegionCount()),
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name: "Regions",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: float64(maxCount),
			},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

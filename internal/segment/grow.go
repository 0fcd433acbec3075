package segment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
	"github.com/ironsheep/image-segment-mcp/internal/raster"
)

// DefaultThreshold is the similarity score at which a pixel is excluded
// from a region.
const DefaultThreshold = 100

// ErrInvalidThreshold is returned when a Grower's threshold is not positive.
var ErrInvalidThreshold = errors.New("similarity threshold must be positive")

// Direction is one of the four orthogonal neighbor offsets.
type Direction int

const (
	Down Direction = iota
	Right
	Up
	Left
)

// DefaultOrder is the neighbor visiting order used when a Grower has none.
var DefaultOrder = []Direction{Down, Right, Up, Left}

var directionNames = map[Direction]string{
	Down:  "down",
	Right: "right",
	Up:    "up",
	Left:  "left",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// offset returns the (row, col) delta of the neighbor in direction d.
func (d Direction) offset() (int, int) {
	switch d {
	case Down:
		return 1, 0
	case Right:
		return 0, 1
	case Up:
		return -1, 0
	default:
		return 0, -1
	}
}

// ParseOrder parses a comma separated neighbor order such as
// "down,right,up,left". Each of the four directions must appear exactly once.
func ParseOrder(s string) ([]Direction, error) {
	parts := strings.Split(s, ",")
	order := make([]Direction, 0, len(parts))
	seen := make(map[Direction]bool)
	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		found := false
		for d, n := range directionNames {
			if n == name {
				if seen[d] {
					return nil, fmt.Errorf("direction %q listed twice", name)
				}
				seen[d] = true
				order = append(order, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown direction %q", part)
		}
	}
	if len(order) != len(directionNames) {
		return nil, fmt.Errorf("neighbor order must list all four directions, got %d", len(order))
	}
	return order, nil
}

// FormatOrder is the inverse of ParseOrder.
func FormatOrder(order []Direction) string {
	names := make([]string, len(order))
	for i, d := range order {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

// Similarity returns the sum of absolute per-channel differences between
// two colors. Lower is more similar; identical colors score 0.
func Similarity(a, b raster.ColorRGB) int {
	return a.ManhattanDistance(b)
}

// Grower grows a single region of similar, 4-connected pixels from a seed.
//
// The color of the first pixel visited is the anchor for the whole region:
// every candidate is compared against it, never against a running mean.
// Region shape therefore depends on where growth starts.
type Grower struct {
	// Threshold is the exclusive similarity limit. A pixel joins the region
	// iff Similarity(anchor, pixel) < Threshold.
	Threshold int

	// Order is the neighbor visiting order. nil means DefaultOrder.
	Order []Direction
}

// NewGrower returns a Grower with DefaultThreshold and DefaultOrder.
func NewGrower() Grower {
	return Grower{Threshold: DefaultThreshold, Order: DefaultOrder}
}

type cell struct {
	row, col int
}

// Grow collects the region containing (seedRow, seedCol).
//
// Parameters:
//   - seedRow, seedCol: starting pixel; must lie inside src.
//   - src: colors to segment.
//   - claims: pixels already assigned to a region. Every pixel added to the
//     returned sequence is marked Claimed. Must have src's dimensions.
//
// Returns:
//   - *pixel.Sequence: the region's pixels. The first record is the seed.
//     Empty if the seed was already claimed.
//   - error: wraps raster.ErrIndexOutOfRange for an out-of-bounds seed or
//     mismatched claim raster, ErrInvalidThreshold for a bad Grower.
//
// # Algorithm
//
// Depth-first flood fill over 4-connectivity. Each visited pixel is skipped
// if already claimed, otherwise compared against the anchor color. Pixels
// below the threshold are inserted, claimed, and their in-bounds neighbors
// visited in Order. A rejected pixel is left unclaimed and ends that path.
//
// Growth uses an explicit stack instead of recursion, so region size is
// bounded by memory rather than goroutine stack depth. Neighbors are pushed
// in reverse order and checked when popped, which visits pixels in exactly
// the order a recursive fill would.
func (g Grower) Grow(seedRow, seedCol int, src raster.Reader, claims *raster.ClaimRaster) (*pixel.Sequence, error) {
	if g.Threshold <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreshold, g.Threshold)
	}
	rows, cols := src.Rows(), src.Cols()
	if claims.Rows() != rows || claims.Cols() != cols {
		return nil, fmt.Errorf("claim raster %dx%d does not match source %dx%d: %w",
			claims.Rows(), claims.Cols(), rows, cols, raster.ErrIndexOutOfRange)
	}
	if !claims.InBounds(seedRow, seedCol) {
		return nil, fmt.Errorf("seed (%d,%d) outside %dx%d source: %w",
			seedRow, seedCol, rows, cols, raster.ErrIndexOutOfRange)
	}

	order := g.Order
	if len(order) == 0 {
		order = DefaultOrder
	}

	region := pixel.NewSequence()
	var anchor raster.ColorRGB
	stack := []cell{{row: seedRow, col: seedCol}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		claimed, err := claims.IsClaimed(p.row, p.col)
		if err != nil {
			return nil, err
		}
		if claimed {
			continue
		}

		rec, err := pixel.ReadRecord(src, p.row, p.col)
		if err != nil {
			return nil, err
		}
		if region.Len() == 0 {
			anchor = rec.Color()
		}
		if Similarity(anchor, rec.Color()) >= g.Threshold {
			continue
		}

		region.Insert(rec)
		if err := claims.Claim(p.row, p.col); err != nil {
			return nil, err
		}

		for i := len(order) - 1; i >= 0; i-- {
			dr, dc := order[i].offset()
			nr, nc := p.row+dr, p.col+dc
			if claims.InBounds(nr, nc) {
				stack = append(stack, cell{row: nr, col: nc})
			}
		}
	}

	return region, nil
}

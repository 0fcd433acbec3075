package raster

import "fmt"

// ClaimState marks whether a pixel has been assigned to a region.
type ClaimState uint8

const (
	Unclaimed ClaimState = iota
	Claimed
)

func (s ClaimState) String() string {
	switch s {
	case Unclaimed:
		return "unclaimed"
	case Claimed:
		return "claimed"
	default:
		return fmt.Sprintf("ClaimState(%d)", uint8(s))
	}
}

// ClaimRaster tracks which pixels of a segmentation run already belong to a
// region. A pixel only ever moves from Unclaimed to Claimed.
type ClaimRaster struct {
	rows, cols int
	marks      []ClaimState
	claimed    int
}

// NewClaimRaster returns a rows x cols grid with every pixel Unclaimed.
func NewClaimRaster(rows, cols int) (*ClaimRaster, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid claim raster dimensions %dx%d", rows, cols)
	}
	return &ClaimRaster{rows: rows, cols: cols, marks: make([]ClaimState, rows*cols)}, nil
}

// Rows returns the number of rows.
func (c *ClaimRaster) Rows() int { return c.rows }

// Cols returns the number of columns.
func (c *ClaimRaster) Cols() int { return c.cols }

// InBounds reports whether (row, col) is inside the grid.
func (c *ClaimRaster) InBounds(row, col int) bool {
	return row >= 0 && row < c.rows && col >= 0 && col < c.cols
}

// State returns the claim state of (row, col).
func (c *ClaimRaster) State(row, col int) (ClaimState, error) {
	if !c.InBounds(row, col) {
		return Unclaimed, c.rangeError(row, col)
	}
	return c.marks[row*c.cols+col], nil
}

// IsClaimed reports whether (row, col) belongs to a region.
func (c *ClaimRaster) IsClaimed(row, col int) (bool, error) {
	s, err := c.State(row, col)
	return s == Claimed, err
}

// Claim marks (row, col) as Claimed. Claiming an already claimed pixel is a
// no-op.
func (c *ClaimRaster) Claim(row, col int) error {
	if !c.InBounds(row, col) {
		return c.rangeError(row, col)
	}
	i := row*c.cols + col
	if c.marks[i] != Claimed {
		c.marks[i] = Claimed
		c.claimed++
	}
	return nil
}

// ClaimedCount returns the number of claimed pixels.
func (c *ClaimRaster) ClaimedCount() int {
	return c.claimed
}

func (c *ClaimRaster) rangeError(row, col int) error {
	return fmt.Errorf("(%d,%d) outside %dx%d claim raster: %w", row, col, c.rows, c.cols, ErrIndexOutOfRange)
}

package pixel

import (
	"fmt"

	"github.com/ironsheep/image-segment-mcp/internal/raster"
)

// Record is the color and location of a single pixel.
type Record struct {
	Red   int `json:"red"`   // Red channel (0-255)
	Green int `json:"green"` // Green channel (0-255)
	Blue  int `json:"blue"`  // Blue channel (0-255)
	Row   int `json:"row"`   // Row in the source raster (0-based)
	Col   int `json:"col"`   // Column in the source raster (0-based)
}

// NewRecord builds a Record for the pixel at (row, col) with color c.
func NewRecord(row, col int, c raster.ColorRGB) Record {
	return Record{
		Red:   int(c.R),
		Green: int(c.G),
		Blue:  int(c.B),
		Row:   row,
		Col:   col,
	}
}

// ReadRecord samples the pixel at (row, col) of src.
func ReadRecord(src raster.Reader, row, col int) (Record, error) {
	c, err := src.ColorAt(row, col)
	if err != nil {
		return Record{}, err
	}
	return NewRecord(row, col, c), nil
}

// Color returns the record's channels as a ColorRGB.
func (r Record) Color() raster.ColorRGB {
	return raster.ColorRGB{R: uint8(r.Red), G: uint8(r.Green), B: uint8(r.Blue)}
}

func (r Record) String() string {
	return fmt.Sprintf("(%d,%d) rgb(%d,%d,%d)", r.Row, r.Col, r.Red, r.Green, r.Blue)
}

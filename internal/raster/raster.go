package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// ErrIndexOutOfRange is returned for any access outside a raster's declared
// bounds. Inside this module it always indicates a caller bug.
var ErrIndexOutOfRange = errors.New("raster index out of range")

// Reader gives read access to an RGB raster addressed by (row, col).
type Reader interface {
	Rows() int
	Cols() int
	// ColorAt returns the color at (row, col). Valid rows are [0, Rows())
	// and valid columns are [0, Cols()).
	ColorAt(row, col int) (ColorRGB, error)
}

// Writer is a Reader whose pixels can be replaced.
type Writer interface {
	Reader
	SetColorAt(row, col int, c ColorRGB) error
}

// Raster is a dense in-memory RGB image stored in row-major order.
//
// Rows run top to bottom and columns left to right, so (row, col)
// corresponds to image coordinates (x=col, y=row).
type Raster struct {
	rows, cols int
	pix        []ColorRGB
}

// New creates a rows x cols raster with every pixel set to fill.
// A raster with zero rows or columns is valid and has no pixels.
func New(rows, cols int, fill ColorRGB) (*Raster, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", rows, cols)
	}
	pix := make([]ColorRGB, rows*cols)
	if fill != (ColorRGB{}) {
		for i := range pix {
			pix[i] = fill
		}
	}
	return &Raster{rows: rows, cols: cols, pix: pix}, nil
}

// FromImage copies img into a new Raster. Alpha is discarded; the image is
// normalized to 8-bit RGBA first so every color model decodes the same way.
func FromImage(img image.Image) *Raster {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	r := &Raster{rows: b.Dy(), cols: b.Dx(), pix: make([]ColorRGB, b.Dx()*b.Dy())}
	for y := 0; y < r.rows; y++ {
		// rgba.Pix starts at rgba.Rect.Min, so offsets are relative.
		off := y * rgba.Stride
		for x := 0; x < r.cols; x++ {
			i := off + x*4
			r.pix[y*r.cols+x] = ColorRGB{R: rgba.Pix[i], G: rgba.Pix[i+1], B: rgba.Pix[i+2]}
		}
	}
	return r
}

// Rows returns the number of pixel rows (image height).
func (r *Raster) Rows() int { return r.rows }

// Cols returns the number of pixel columns (image width).
func (r *Raster) Cols() int { return r.cols }

// Area returns Rows()*Cols().
func (r *Raster) Area() int { return r.rows * r.cols }

// InBounds reports whether (row, col) addresses a pixel of r.
func (r *Raster) InBounds(row, col int) bool {
	return row >= 0 && row < r.rows && col >= 0 && col < r.cols
}

// ColorAt implements Reader.
func (r *Raster) ColorAt(row, col int) (ColorRGB, error) {
	if !r.InBounds(row, col) {
		return ColorRGB{}, r.rangeError(row, col)
	}
	return r.pix[row*r.cols+col], nil
}

// SetColorAt implements Writer.
func (r *Raster) SetColorAt(row, col int, c ColorRGB) error {
	if !r.InBounds(row, col) {
		return r.rangeError(row, col)
	}
	r.pix[row*r.cols+col] = c
	return nil
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	pix := make([]ColorRGB, len(r.pix))
	copy(pix, r.pix)
	return &Raster{rows: r.rows, cols: r.cols, pix: pix}
}

// Equal reports whether other has the same dimensions as r and every pixel
// matches on all three channels.
func (r *Raster) Equal(other Reader) bool {
	if other == nil || r.rows != other.Rows() || r.cols != other.Cols() {
		return false
	}
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			c, err := other.ColorAt(row, col)
			if err != nil || c != r.pix[row*r.cols+col] {
				return false
			}
		}
	}
	return true
}

// Mirror returns a new raster with the left and right sides reversed.
func (r *Raster) Mirror() *Raster {
	m := r.Clone()
	for row := 0; row < m.rows; row++ {
		line := m.pix[row*m.cols : (row+1)*m.cols]
		for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
			line[i], line[j] = line[j], line[i]
		}
	}
	return m
}

// Image converts the raster to an opaque *image.RGBA with bounds
// (0,0)-(Cols,Rows), ready for encoding.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.cols, r.rows))
	for row := 0; row < r.rows; row++ {
		off := row * img.Stride
		for col := 0; col < r.cols; col++ {
			c := r.pix[row*r.cols+col]
			i := off + col*4
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// String describes the raster's dimensions, e.g.
// "3 rows by 4 columns. (12 total pixels)".
func (r *Raster) String() string {
	return fmt.Sprintf("%d rows by %d columns. (%d total pixels)", r.rows, r.cols, r.Area())
}

func (r *Raster) rangeError(row, col int) error {
	return fmt.Errorf("(%d,%d) outside %dx%d raster: %w", row, col, r.rows, r.cols, ErrIndexOutOfRange)
}

package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// PrepareOptions controls optional preprocessing applied before
// segmentation. The zero value leaves the image unchanged.
type PrepareOptions struct {
	// MaxDimension shrinks the image so neither side exceeds it, keeping
	// the aspect ratio. 0 disables resizing. Images are never enlarged.
	MaxDimension int

	// BlurSigma applies a Gaussian blur with this standard deviation.
	// Smoothing merges speckle noise into its surroundings and so reduces
	// the number of tiny regions. 0 disables blurring.
	BlurSigma float64
}

// Prepare applies opts to img and converts the result to a Raster.
func Prepare(img image.Image, opts PrepareOptions) *Raster {
	if opts.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxDimension || b.Dy() > opts.MaxDimension {
			img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
		}
	}
	if opts.BlurSigma > 0 {
		img = imaging.Blur(img, opts.BlurSigma)
	}
	return FromImage(img)
}

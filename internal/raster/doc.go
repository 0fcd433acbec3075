// Package raster provides the RGB pixel grids consumed and produced by
// segmentation, plus decoding, encoding and caching of image files.
//
// # Coordinate System
//
// Rasters are addressed by (row, col), both 0-based, with (0,0) at the
// top-left corner. Row corresponds to image Y and col to image X. Every
// accessor rejects coordinates outside [0,Rows) x [0,Cols) with an error
// wrapping ErrIndexOutOfRange; nothing is ever clamped.
//
// # Claims
//
// ClaimRaster is a separate grid of Unclaimed/Claimed markers with the same
// addressing. It records which pixels a segmentation run has already
// assigned to a region, independently of the colors written to the output.
//
// # Formats
//
// Load and Save go through github.com/disintegration/imaging. GIF, PNG,
// JPEG, BMP and TIFF can be read and written; WebP can only be read.
// Alpha is discarded on load.
package raster

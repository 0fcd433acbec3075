// Package segment implements color-based region growing segmentation.
//
// A Segmenter scans a raster row by row. Every pixel that does not yet
// belong to a region seeds a new one, which a Grower extends across
// 4-connected neighbors (up, down, left, right; never diagonals) whose color
// is close to the seed's color. Each finished region is replaced in the
// output by its average color.
//
// # Similarity
//
// Two colors are compared by the sum of absolute channel differences:
//
//	|R1-R2| + |G1-G2| + |B1-B2|
//
// A pixel joins a region when its score against the region's seed color is
// strictly below the threshold (100 by default). The seed color never
// changes while the region grows.
//
// # Averaging
//
// Region and global averages use integer division per channel and truncate.
// Averaging an empty sequence returns pixel.ErrEmptyContainer rather than
// dividing by zero.
//
// # Limitations
//
//   - Results depend on scan order and neighbor order, not on a stable
//     cluster center.
//   - A gradual color ramp can be split into bands, since each pixel is
//     compared with the seed only.
package segment

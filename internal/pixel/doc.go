// Package pixel provides the pixel record value and the ordered, mergeable
// collection used to accumulate segmentation regions.
//
// # Records
//
// A Record is a plain value: the 8-bit red, green and blue channels of a
// pixel together with its row and column in the source raster. Records have
// no identity beyond their fields and no mutating methods, so copying a
// Record is always safe.
//
// # Sequences
//
// A Sequence owns its elements exclusively. Clone, Assign and Merge always
// copy; two sequences never share backing storage, so mutating one can never
// be observed through another.
//
// Iteration order is insertion order. Callers should only rely on every
// element being visited exactly once.
//
// # Thread Safety
//
// Sequence is not safe for concurrent use. An Iterator detects mutation of
// its source after it was created and stops with ErrConcurrentModification
// instead of returning inconsistent data.
package pixel

// Package frame provides the pixel buffer type shared by every transition
// along with the raster operations they need: bilinear resize, affine and
// perspective warps, displacement-field remapping, blurs, and blending.
//
// Pixels are stored as float32 values in the 0..255 range so that blend and
// warp arithmetic stays stable across chained operations; conversion back to
// 8-bit bytes clamps once at the edge of the package. Operations never mutate
// their inputs and always allocate a fresh Image, which is what makes
// per-frame transition application safe to run concurrently.
package frame

// Package mmcq extracts a small representative color palette from raw RGBA
// pixels using Modified Median Cut Quantization.
//
// The algorithm builds a 32x32x32 histogram of the sampled pixels, wraps the
// occupied region in a VBox and repeatedly splits boxes along their widest
// axis. Splitting happens in two phases: the first favors boxes with the most
// pixels, the second favors boxes with the largest count*volume product. The
// averages of the resulting boxes form the palette, most dominant first.
//
// # Determinism
//
// Quantize never uses randomness or map iteration. Identical inputs produce
// identical palettes.
//
// # Thread Safety
//
// A single Quantize call is synchronous and owns all of its state. Independent
// calls may run concurrently. A VBox caches derived values lazily and is not
// safe for concurrent use; a ColorMap returned by Quantize is read-only and may
// be shared between goroutines.
package mmcq

package mmcq

const (
	// SignalBits is the number of significant bits kept per channel.
	SignalBits = 5
	// RightShift reduces an 8-bit channel to SignalBits.
	RightShift = 8 - SignalBits
	// Multiplier maps a quantized channel back toward the 8-bit range.
	Multiplier = 1 << RightShift
	// AxisLength is the number of quantized values per channel.
	AxisLength = 1 << SignalBits
	// HistogramSize is the number of cells in the quantized color cube.
	HistogramSize = 1 << (3 * SignalBits)

	// alphaThreshold: pixels with alpha at or below this are skipped.
	alphaThreshold = 125
	// whiteThreshold: with ignoreWhite, pixels whose channels all exceed this are skipped.
	whiteThreshold = 250
)

// Histogram counts sampled pixels per quantized color cell. It is written once
// while sampling and only read afterwards; every VBox derived from the same
// Quantize call points at the same Histogram.
type Histogram struct {
	cells [HistogramSize]int
	total int
}

// colorIndex flattens a quantized (r, g, b) coordinate.
func colorIndex(r, g, b int) int {
	return (r << (2 * SignalBits)) + (g << SignalBits) + b
}

func inAxis(v int) bool {
	return v >= 0 && v < AxisLength
}

// At returns the count of cell (r, g, b). Coordinates outside the quantized
// cube read as zero.
func (h *Histogram) At(r, g, b int) int {
	if !inAxis(r) || !inAxis(g) || !inAxis(b) {
		return 0
	}
	return h.cells[colorIndex(r, g, b)]
}

// Total returns the number of pixels that were counted.
func (h *Histogram) Total() int {
	return h.total
}

// bounds tracks the observed per-channel extent while sampling. The min
// fields start at their maximum and the max fields at their minimum, so an
// untouched bounds is inverted.
type bounds struct {
	rMin, rMax, gMin, gMax, bMin, bMax int
}

func emptyBounds() bounds {
	return bounds{
		rMin: 255, gMin: 255, bMin: 255,
		rMax: 0, gMax: 0, bMax: 0,
	}
}

func (b *bounds) include(r, g, bl int) {
	b.rMin = min(b.rMin, r)
	b.rMax = max(b.rMax, r)
	b.gMin = min(b.gMin, g)
	b.gMax = max(b.gMax, g)
	b.bMin = min(b.bMin, bl)
	b.bMax = max(b.bMax, bl)
}

// buildHistogram samples every quality-th pixel of an RGBA buffer and returns
// the histogram together with the box that bounds all counted pixels. When
// nothing is counted the returned box is inverted and has zero count.
func buildHistogram(pixels []byte, quality int, ignoreWhite bool) (*Histogram, *VBox) {
	h := &Histogram{}
	ext := emptyBounds()

	pixelCount := len(pixels) / 4
	for i := 0; i < pixelCount; i += quality {
		off := i * 4
		r, g, b, a := pixels[off], pixels[off+1], pixels[off+2], pixels[off+3]

		if a <= alphaThreshold {
			continue
		}
		if ignoreWhite && r > whiteThreshold && g > whiteThreshold && b > whiteThreshold {
			continue
		}

		qr := int(r >> RightShift)
		qg := int(g >> RightShift)
		qb := int(b >> RightShift)

		ext.include(qr, qg, qb)
		h.cells[colorIndex(qr, qg, qb)]++
		h.total++
	}

	return h, newVBox(ext, h)
}

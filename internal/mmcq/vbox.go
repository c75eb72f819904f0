package mmcq

import "fmt"

// colorAxis identifies one channel of the quantized color cube.
type colorAxis int

const (
	red colorAxis = iota
	green
	blue
)

func (a colorAxis) String() string {
	switch a {
	case red:
		return "red"
	case green:
		return "green"
	default:
		return "blue"
	}
}

// VBox is an axis-aligned box over the quantized color cube. Bounds are
// inclusive and fixed at construction; splitting produces new boxes. Count,
// volume and average are computed on first use and cached.
type VBox struct {
	bounds
	hist *Histogram

	count    int
	countOK  bool
	volume   int
	volumeOK bool
	average  Color
	avgOK    bool
}

func newVBox(b bounds, h *Histogram) *VBox {
	return &VBox{bounds: b, hist: h}
}

// NewVBox returns a box over h with the given inclusive quantized bounds.
// Every bound must lie within [0, AxisLength) and each min must not exceed
// its max.
func NewVBox(h *Histogram, rMin, rMax, gMin, gMax, bMin, bMax int) (*VBox, error) {
	for _, v := range []int{rMin, rMax, gMin, gMax, bMin, bMax} {
		if !inAxis(v) {
			return nil, fmt.Errorf("%w: bound %d outside [0,%d)", ErrOutOfRange, v, AxisLength)
		}
	}
	if rMin > rMax || gMin > gMax || bMin > bMax {
		return nil, fmt.Errorf("%w: inverted bounds r[%d,%d] g[%d,%d] b[%d,%d]",
			ErrOutOfRange, rMin, rMax, gMin, gMax, bMin, bMax)
	}
	return newVBox(bounds{rMin, rMax, gMin, gMax, bMin, bMax}, h), nil
}

// Bounds returns the inclusive quantized bounds of the box.
func (v *VBox) Bounds() (rMin, rMax, gMin, gMax, bMin, bMax int) {
	return v.rMin, v.rMax, v.gMin, v.gMax, v.bMin, v.bMax
}

// Volume returns the number of quantized cells covered by the box.
func (v *VBox) Volume() int {
	if !v.volumeOK {
		v.volume = (v.rMax - v.rMin + 1) * (v.gMax - v.gMin + 1) * (v.bMax - v.bMin + 1)
		v.volumeOK = true
	}
	return v.volume
}

// Count returns the number of sampled pixels inside the box.
func (v *VBox) Count() int {
	if !v.countOK {
		return v.Recount()
	}
	return v.count
}

// Recount sums the histogram again and refreshes the cached count.
func (v *VBox) Recount() int {
	total := 0
	for r := v.rMin; r <= v.rMax; r++ {
		for g := v.gMin; g <= v.gMax; g++ {
			for b := v.bMin; b <= v.bMax; b++ {
				total += v.hist.At(r, g, b)
			}
		}
	}
	v.count = total
	v.countOK = true
	return total
}

// Average returns the population-weighted center of the box reconstructed to
// 8-bit channels. An empty box averages to its own midpoint.
func (v *VBox) Average() Color {
	if v.avgOK {
		return v.average
	}

	weight := 0
	rSum, gSum, bSum := 0, 0, 0
	for r := v.rMin; r <= v.rMax; r++ {
		for g := v.gMin; g <= v.gMax; g++ {
			for b := v.bMin; b <= v.bMax; b++ {
				n := v.hist.At(r, g, b)
				if n == 0 {
					continue
				}
				weight += n
				// n * (i + 0.5) * Multiplier, kept in integers
				rSum += n * (2*r + 1) * Multiplier / 2
				gSum += n * (2*g + 1) * Multiplier / 2
				bSum += n * (2*b + 1) * Multiplier / 2
			}
		}
	}

	if weight > 0 {
		v.average = Color{
			R: uint8(rSum / weight),
			G: uint8(gSum / weight),
			B: uint8(bSum / weight),
		}
	} else {
		v.average = Color{
			R: midpoint(v.rMin, v.rMax),
			G: midpoint(v.gMin, v.gMax),
			B: midpoint(v.bMin, v.bMax),
		}
	}
	v.avgOK = true
	return v.average
}

func midpoint(lo, hi int) uint8 {
	return uint8(min(Multiplier*(lo+hi+1)/2, 255))
}

// widestAxis returns the axis with the largest extent. Ties prefer red, then
// green.
func (v *VBox) widestAxis() colorAxis {
	rw := v.rMax - v.rMin
	gw := v.gMax - v.gMin
	bw := v.bMax - v.bMin

	switch {
	case rw >= gw && rw >= bw:
		return red
	case gw >= rw && gw >= bw:
		return green
	default:
		return blue
	}
}

// axisRange returns the inclusive bounds of the box along axis.
func (v *VBox) axisRange(axis colorAxis) (lo, hi int) {
	switch axis {
	case red:
		return v.rMin, v.rMax
	case green:
		return v.gMin, v.gMax
	default:
		return v.bMin, v.bMax
	}
}

// sliceSum sums the histogram over the plane at index i of axis, spanning the
// full extent of the other two axes.
func (v *VBox) sliceSum(axis colorAxis, i int) int {
	sum := 0
	switch axis {
	case red:
		for g := v.gMin; g <= v.gMax; g++ {
			for b := v.bMin; b <= v.bMax; b++ {
				sum += v.hist.At(i, g, b)
			}
		}
	case green:
		for r := v.rMin; r <= v.rMax; r++ {
			for b := v.bMin; b <= v.bMax; b++ {
				sum += v.hist.At(r, i, b)
			}
		}
	default:
		for r := v.rMin; r <= v.rMax; r++ {
			for g := v.gMin; g <= v.gMax; g++ {
				sum += v.hist.At(r, g, i)
			}
		}
	}
	return sum
}

// splitAt returns two boxes sharing the histogram: one ending at cut on axis,
// the other starting right after it.
func (v *VBox) splitAt(axis colorAxis, cut int) (*VBox, *VBox) {
	lo, hi := v.bounds, v.bounds
	switch axis {
	case red:
		lo.rMax, hi.rMin = cut, cut+1
	case green:
		lo.gMax, hi.gMin = cut, cut+1
	default:
		lo.bMax, hi.bMin = cut, cut+1
	}
	return newVBox(lo, v.hist), newVBox(hi, v.hist)
}

func (v *VBox) String() string {
	return fmt.Sprintf("VBox{r[%d,%d] g[%d,%d] b[%d,%d] count=%d}",
		v.rMin, v.rMax, v.gMin, v.gMax, v.bMin, v.bMax, v.Count())
}

package mmcq

// ColorMap is the ordered result of Quantize, most dominant box first.
type ColorMap struct {
	boxes    []*VBox
	averages []Color
}

// NewColorMap wraps boxes in their given order. Averages are computed up front
// so the map can be read concurrently.
func NewColorMap(boxes []*VBox) *ColorMap {
	averages := make([]Color, len(boxes))
	for i, b := range boxes {
		b.Count()
		b.Volume()
		averages[i] = b.Average()
	}
	return &ColorMap{boxes: boxes, averages: averages}
}

// Len returns the number of palette entries.
func (m *ColorMap) Len() int {
	return len(m.boxes)
}

// Boxes returns the boxes backing the palette, in palette order.
func (m *ColorMap) Boxes() []*VBox {
	return append([]*VBox(nil), m.boxes...)
}

// Palette returns the average color of every box in map order.
func (m *ColorMap) Palette() []Color {
	return append([]Color(nil), m.averages...)
}

// NearestColor returns the palette color closest to c by Manhattan distance.
// Ties go to the earlier entry. The second result is false when the map is
// empty.
func (m *ColorMap) NearestColor(c Color) (Color, bool) {
	if len(m.averages) == 0 {
		return Color{}, false
	}
	best := 0
	bestDist := c.Distance(m.averages[0])
	for i := 1; i < len(m.averages); i++ {
		if d := c.Distance(m.averages[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return m.averages[best], true
}

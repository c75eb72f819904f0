package mmcq

import (
	"cmp"
	"slices"
)

// maxIterations bounds the work done by a single refinement pass.
const maxIterations = 1000

// compareFunc orders boxes ascending; the last box after sorting is the next
// candidate for splitting.
type compareFunc func(a, b *VBox) int

// compareByCount orders boxes by pixel count.
func compareByCount(a, b *VBox) int {
	return cmp.Compare(a.Count(), b.Count())
}

// compareByProduct orders boxes by count*volume, or by volume alone when the
// counts are equal.
func compareByProduct(a, b *VBox) int {
	ac, bc := a.Count(), b.Count()
	if ac == bc {
		return cmp.Compare(a.Volume(), b.Volume())
	}
	return cmp.Compare(int64(ac)*int64(a.Volume()), int64(bc)*int64(b.Volume()))
}

// refinement holds the boxes of one Quantize call. queue is kept sorted by the
// comparator of the running pass. settled collects boxes the splitter could
// not divide; they leave the queue for good but still end up in the ColorMap.
type refinement struct {
	queue   []*VBox
	settled []*VBox
}

func (q *refinement) size() int {
	return len(q.queue) + len(q.settled)
}

func (q *refinement) sort(compare compareFunc) {
	slices.SortStableFunc(q.queue, compare)
}

// iterate splits the largest box of the queue until the queue holds target
// boxes, the queue runs dry, or the iteration budget is spent. It reports the
// number of iterations consumed.
func (q *refinement) iterate(compare compareFunc, target int) int {
	niters := 0
	for niters < maxIterations {
		if len(q.queue) == 0 || q.size() >= target {
			return niters
		}

		last := len(q.queue) - 1
		vbox := q.queue[last]

		if vbox.Count() == 0 {
			q.sort(compare)
			niters++
			continue
		}

		q.queue = q.queue[:last]

		boxes := medianCut(vbox)
		if len(boxes) == 0 {
			q.settled = append(q.settled, vbox)
			continue
		}
		q.queue = append(q.queue, boxes...)
		q.sort(compare)

		if q.size() >= target {
			return niters
		}
		niters++
	}
	return niters
}

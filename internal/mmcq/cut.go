package mmcq

// medianCut splits v along its widest axis. It returns nil when no split point
// exists inside the box or the only populated slice past the median is the
// last one, v itself when the box holds a single pixel, and two
// boxes otherwise. The cut is biased toward the wider side of the median and
// never leaves the lower box empty.
func medianCut(v *VBox) []*VBox {
	count := v.Count()
	if count == 0 {
		return nil
	}
	if count == 1 {
		return []*VBox{v}
	}

	axis := v.widestAxis()
	lo, hi := v.axisRange(axis)

	// Entries outside [lo, hi] stay at -1.
	var partialSum, lookAheadSum [AxisLength]int
	for i := range partialSum {
		partialSum[i] = -1
		lookAheadSum[i] = -1
	}

	total := 0
	for i := lo; i <= hi; i++ {
		total += v.sliceSum(axis, i)
		partialSum[i] = total
	}
	for i := lo; i < hi; i++ {
		lookAheadSum[i] = total - partialSum[i]
	}

	return cut(v, axis, lo, hi, &partialSum, &lookAheadSum, total)
}

func cut(v *VBox, axis colorAxis, lo, hi int, partialSum, lookAheadSum *[AxisLength]int, total int) []*VBox {
	// Last index whose cumulative sum is still <= total/2.
	left, right := lo, hi
	for left <= right {
		mid := left + (right-left)/2
		if partialSum[mid] <= total/2 {
			left = mid + 1
		} else {
			right = mid - 1
		}
	}
	splitPoint := right

	if splitPoint < lo || splitPoint >= hi {
		return nil
	}

	leftWidth := splitPoint - lo
	rightWidth := hi - splitPoint

	var d2 int
	if leftWidth <= rightWidth {
		d2 = min(hi-1, splitPoint+rightWidth/2)
	} else {
		d2 = max(lo, splitPoint-1-leftWidth/2)
	}

	for d2 < hi && partialSum[d2] <= 0 {
		d2++
	}
	// All remaining mass sits in the last slice; cutting there would leave
	// the upper box outside the cube.
	if d2 >= hi {
		return nil
	}
	for lookAheadSum[d2] == 0 && d2 > 0 && partialSum[d2-1] > 0 {
		d2--
	}

	a, b := v.splitAt(axis, d2)
	return []*VBox{a, b}
}

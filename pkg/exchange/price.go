package exchange

// estimateMarketPrice derives a scalar market price as the y-coordinate of
// the intersection of a demand line and a supply line. The demand line runs
// through the first and last limit buy orders in priority order, the supply
// line through the first and last limit sells, each as
// (quantity remaining, price) points.
//
// This is an approximation, not a market-clearing price. When either side has
// no limit orders, the lines are parallel, or the intercept is negative, the
// caller's previous estimate stands. A side with a single limit order yields
// a degenerate line and resolves to the parallel case.
func estimateMarketPrice(buys, sells *Book) (uint64, bool) {
	b1, b2, ok := buys.limitEndpoints()
	if !ok {
		return 0, false
	}
	s1, s2, ok := sells.limitEndpoints()
	if !ok {
		return 0, false
	}

	_, y, ok := lineIntersection(
		float64(b1.Remaining()), float64(b1.limitPrice),
		float64(b2.Remaining()), float64(b2.limitPrice),
		float64(s1.Remaining()), float64(s1.limitPrice),
		float64(s2.Remaining()), float64(s2.limitPrice),
	)
	if !ok || y < 0 {
		return 0, false
	}
	return uint64(y), true
}

// lineIntersection solves for the crossing of the line through (x1,y1),(x2,y2)
// and the line through (x3,y3),(x4,y4). ok is false when the lines are
// parallel or degenerate (zero determinant).
func lineIntersection(x1, y1, x2, y2, x3, y3, x4, y4 float64) (x, y float64, ok bool) {
	// First line: a1*x + b1*y = c1
	a1 := y2 - y1
	b1 := x1 - x2
	c1 := a1*x1 + b1*y1

	// Second line: a2*x + b2*y = c2
	a2 := y4 - y3
	b2 := x3 - x4
	c2 := a2*x3 + b2*y3

	det := a1*b2 - a2*b1
	if det == 0 {
		return 0, 0, false
	}

	x = (b2*c1 - b1*c2) / det
	y = (a1*c2 - a2*c1) / det
	return x, y, true
}

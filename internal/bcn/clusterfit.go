package bcn

import (
	"math"
	"sort"
)

// Cluster fitter: exhaustively tries every way of partitioning the point
// set, in principal-axis order, into 3 or 4 contiguous groups assigned to
// the palette's 3 or 4 interpolated colours, solving a small weighted
// least-squares system for the optimal endpoints of each partition and
// keeping the lowest-error one. This is the algorithmic core of the
// codec: it is slower than the range fitter but finds the true optimum
// for a given ordering, which in practice is very close to the global
// optimum.
//
// The least-squares solve and its endpoints live entirely in the point
// set's native [0,1]^3 space; the per-channel Weights only scale the
// final error term used to rank partitions against each other, matching
// how the reference codec separates "where the fit lives" from "how much
// each channel's error counts."
//
// fitCluster returns the best endpoint pair and full 16-texel index array.
// When iterative is true, the fit repeats up to 8 times, re-deriving the
// ordering axis from the previous iteration's endpoints each time and
// stopping early once an ordering repeats or the error stops improving.
func fitCluster(ps pointSet, w Weights, threeColour, iterative bool) (start, end vec3, indices [16]uint8) {
	n := len(ps.points)
	if n == 0 {
		return vec3{}, vec3{}, indices
	}

	cov := weightedCovariance(ps.points, ps.weights)
	axis := cov.principalComponent()

	wv := vec3{w[0], w[1], w[2]}

	maxPasses := 1
	if iterative {
		maxPasses = 8
	}

	var bestStart, bestEnd vec3
	var bestAssign []uint8
	bestErr := float32(math.Inf(1))

	seenOrders := make([][]int, 0, maxPasses)

	for pass := 0; pass < maxPasses; pass++ {
		order := sortByAxis(ps.points, axis)
		unique := true
		for _, seen := range seenOrders {
			if sameOrder(order, seen) {
				unique = false
				break
			}
		}
		if !unique {
			break
		}
		seenOrders = append(seenOrders, order)

		var a, b vec3
		var err float32
		var assign []uint8
		if threeColour {
			a, b, err, assign = bestThreePartition(ps.points, ps.weights, order, wv)
		} else {
			a, b, err, assign = bestFourPartition(ps.points, ps.weights, order, wv)
		}

		improved := err < bestErr
		if improved {
			bestErr = err
			bestStart, bestEnd = a, b
			bestAssign = assignForOrder(order, assign, n)
		}

		if !iterative || !improved {
			break
		}

		axis = b.sub(a)
		if axis.length2() < epsilon {
			break
		}
	}

	indices = ps.remapIndices(bestAssign, 3)
	return bestStart, bestEnd, indices
}

func sortByAxis(points []vec3, axis vec3) []int {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	proj := make([]float32, len(points))
	for i, p := range points {
		proj[i] = p.dot(axis)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return proj[order[i]] < proj[order[j]]
	})
	return order
}

func sameOrder(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assignForOrder expands a per-ordered-position palette index array back
// to per-original-point-index order.
func assignForOrder(order []int, assign []uint8, n int) []uint8 {
	out := make([]uint8, n)
	for pos, pointIdx := range order {
		out[pointIdx] = assign[pos]
	}
	return out
}

// weightedError evaluates the cluster fit's quadratic error expansion
// for one candidate endpoint pair, weighting each channel's contribution
// by w before summing. alpha2Sum/beta2Sum/alphabetaSum are scalars (the
// same combination applies to every channel); alphaxSum/betaxSum carry
// the per-channel weighted position sums.
func weightedError(a, b vec3, alphaxSum, betaxSum vec3, alpha2Sum, beta2Sum, alphabetaSum float32, w vec3) float32 {
	e1 := vec3{a.x * a.x, a.y * a.y, a.z * a.z}.scale(alpha2Sum).
		add(vec3{b.x * b.x, b.y * b.y, b.z * b.z}.scale(beta2Sum))
	ab := vec3{a.x * b.x, a.y * b.y, a.z * b.z}.scale(alphabetaSum)
	e2 := ab.sub(vec3{a.x * alphaxSum.x, a.y * alphaxSum.y, a.z * alphaxSum.z})
	e3 := e2.sub(vec3{b.x * betaxSum.x, b.y * betaxSum.y, b.z * betaxSum.z})
	e4 := e3.scale(2).add(e1)
	e5 := e4.mul(w)
	return e5.x + e5.y + e5.z
}

func solveEndpoints(alphaxSum, betaxSum vec3, alpha2Sum, beta2Sum, alphabetaSum float32) (a, b vec3, ok bool) {
	det := alpha2Sum*beta2Sum - alphabetaSum*alphabetaSum
	if det > -epsilon && det < epsilon {
		return vec3{}, vec3{}, false
	}
	factor := 1 / det
	a = alphaxSum.scale(beta2Sum).sub(betaxSum.scale(alphabetaSum)).scale(factor)
	b = betaxSum.scale(alpha2Sum).sub(alphaxSum.scale(alphabetaSum)).scale(factor)
	a = a.clampUnit().snapToGrid()
	b = b.clampUnit().snapToGrid()
	return a, b, true
}

// bestFourPartition enumerates every way to split order (already sorted
// along the fit axis) into 4 contiguous runs — [0,c0), [c0,c1), [c1,c2),
// [c2,n) — assigned palette indices 0, 2, 3, 1 respectively, solves the
// weighted least-squares endpoints for each split, and returns the
// lowest-error result.
func bestFourPartition(points []vec3, weights []float32, order []int, w vec3) (start, end vec3, bestErr float32, assign []uint8) {
	n := len(order)

	px := make([]vec3, n)
	pw := make([]float32, n)
	for i, idx := range order {
		px[i] = points[idx]
		pw[i] = weights[idx]
	}

	var total vec3
	var totalW float32
	for i := 0; i < n; i++ {
		total = total.add(px[i].scale(pw[i]))
		totalW += pw[i]
	}

	bestErr = float32(math.Inf(1))
	assign = make([]uint8, n)

	var part0 vec3
	var part0W float32
	for c0 := 0; c0 <= n; c0++ {
		var part1 vec3
		var part1W float32
		for c1 := c0; c1 <= n; c1++ {
			var part2 vec3
			var part2W float32
			for c2 := c1; c2 <= n; c2++ {
				part3 := total.sub(part0).sub(part1).sub(part2)
				part3W := totalW - part0W - part1W - part2W

				alphaxSum := part1.scale(2.0 / 3.0).add(part2.scale(1.0 / 3.0)).add(part0)
				alpha2Sum := part0W + part1W*(4.0/9.0) + part2W*(1.0/9.0)
				betaxSum := part1.scale(1.0 / 3.0).add(part2.scale(2.0 / 3.0)).add(part3)
				beta2Sum := part3W + part2W*(4.0/9.0) + part1W*(1.0/9.0)
				alphabetaSum := (part1W + part2W) * (2.0 / 9.0)

				a, b, ok := solveEndpoints(alphaxSum, betaxSum, alpha2Sum, beta2Sum, alphabetaSum)
				if ok {
					err := weightedError(a, b, alphaxSum, betaxSum, alpha2Sum, beta2Sum, alphabetaSum, w)
					if err < bestErr {
						bestErr = err
						start, end = a, b
						for i := range assign {
							switch {
							case i < c0:
								assign[i] = 0
							case i < c1:
								assign[i] = 2
							case i < c2:
								assign[i] = 3
							default:
								assign[i] = 1
							}
						}
					}
				}

				if c2 < n {
					part2 = part2.add(px[c2].scale(pw[c2]))
					part2W += pw[c2]
				}
			}
			if c1 < n {
				part1 = part1.add(px[c1].scale(pw[c1]))
				part1W += pw[c1]
			}
		}
		if c0 < n {
			part0 = part0.add(px[c0].scale(pw[c0]))
			part0W += pw[c0]
		}
	}

	return start, end, bestErr, assign
}

// bestThreePartition is bestFourPartition's three-colour counterpart: three
// contiguous runs — [0,c0), [c0,c1), [c1,n) — assigned palette indices
// 0, 2, 1; the middle run targets the palette's interpolated midpoint.
func bestThreePartition(points []vec3, weights []float32, order []int, w vec3) (start, end vec3, bestErr float32, assign []uint8) {
	n := len(order)

	px := make([]vec3, n)
	pw := make([]float32, n)
	for i, idx := range order {
		px[i] = points[idx]
		pw[i] = weights[idx]
	}

	var total vec3
	var totalW float32
	for i := 0; i < n; i++ {
		total = total.add(px[i].scale(pw[i]))
		totalW += pw[i]
	}

	bestErr = float32(math.Inf(1))
	assign = make([]uint8, n)

	var part0 vec3
	var part0W float32
	for c0 := 0; c0 <= n; c0++ {
		var part1 vec3
		var part1W float32
		for c1 := c0; c1 <= n; c1++ {
			part2 := total.sub(part0).sub(part1)
			part2W := totalW - part0W - part1W

			alphaxSum := part1.scale(0.5).add(part0)
			alpha2Sum := part0W + part1W*0.25
			betaxSum := part1.scale(0.5).add(part2)
			beta2Sum := part2W + part1W*0.25
			alphabetaSum := part1W * 0.25

			a, b, ok := solveEndpoints(alphaxSum, betaxSum, alpha2Sum, beta2Sum, alphabetaSum)
			if ok {
				err := weightedError(a, b, alphaxSum, betaxSum, alpha2Sum, beta2Sum, alphabetaSum, w)
				if err < bestErr {
					bestErr = err
					start, end = a, b
					for i := range assign {
						switch {
						case i < c0:
							assign[i] = 0
						case i < c1:
							assign[i] = 2
						default:
							assign[i] = 1
						}
					}
				}
			}

			if c1 < n {
				part1 = part1.add(px[c1].scale(pw[c1]))
				part1W += pw[c1]
			}
		}
		if c0 < n {
			part0 = part0.add(px[c0].scale(pw[c0]))
			part0W += pw[c0]
		}
	}

	return start, end, bestErr, assign
}

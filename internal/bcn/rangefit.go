package bcn

// Range fitter: a fast, low-quality colour fit. It finds the point set's
// principal axis, takes the extreme projections onto that axis as
// candidate endpoints, snaps them to the 5-6-5 grid, then assigns every
// point to whichever of the resulting palette's entries is nearest. No
// iteration; one pass of linear algebra plus one nearest-palette-entry
// pass per point.
//
// Unlike the cluster fitter's per-channel weighting of the final error
// term, the range fitter applies the channel weights only when choosing
// the nearest palette entry for each point; the principal axis itself and
// the endpoint selection are computed on unweighted point coordinates.
func fitRange(ps pointSet, w Weights, threeColour bool) (start, end vec3, indices [16]uint8) {
	n := len(ps.points)
	if n == 0 {
		return vec3{}, vec3{}, indices
	}

	cov := weightedCovariance(ps.points, ps.weights)
	axis := cov.principalComponent()

	start = ps.points[0]
	end = ps.points[0]
	minProj, maxProj := start.dot(axis), start.dot(axis)
	for i := 1; i < n; i++ {
		d := ps.points[i].dot(axis)
		if d < minProj {
			start = ps.points[i]
			minProj = d
		} else if d > maxProj {
			end = ps.points[i]
			maxProj = d
		}
	}

	start = start.clampUnit().snapToGrid()
	end = end.clampUnit().snapToGrid()

	palette := buildPaletteVec3(start, end, threeColour)
	wv := vec3{w[0], w[1], w[2]}

	pointIndices := make([]uint8, n)
	for i, p := range ps.points {
		best := 0
		bestErr := float32(-1)
		for j, entry := range palette {
			d := p.sub(entry).mul(wv)
			e := d.length2()
			if bestErr < 0 || e < bestErr {
				bestErr = e
				best = j
			}
		}
		pointIndices[i] = uint8(best)
	}

	indices = ps.remapIndices(pointIndices, 3)
	return start, end, indices
}

// buildPaletteVec3 expands a start/end endpoint pair into the full
// three- or four-entry interpolated palette, in the same index order the
// hardware decoder uses.
func buildPaletteVec3(start, end vec3, threeColour bool) []vec3 {
	if threeColour {
		return []vec3{
			start,
			end,
			start.scale(0.5).add(end.scale(0.5)),
		}
	}
	return []vec3{
		start,
		end,
		start.scale(2.0 / 3.0).add(end.scale(1.0 / 3.0)),
		start.scale(1.0 / 3.0).add(end.scale(2.0 / 3.0)),
	}
}

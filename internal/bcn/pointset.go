package bcn

import "math"

// pointSet is a de-duplicated, weighted view of a 4x4 block's colours in
// [0,1]^3. Texels that compare equal (after alpha masking) collapse to a
// single point with an accumulated weight, which both shrinks the fitters'
// working set and improves numerical conditioning.
type pointSet struct {
	points    []vec3
	weights   []float32
	remap     [16]int8 // texel -> point index, -1 if masked/transparent
	transparent bool   // true if any texel was dropped (BC1 punch-through candidate)
}

// newPointSet builds the point set for one 4x4 tile. mask marks which of
// the 16 texels actually belong to the image (out-of-bounds padding texels
// are excluded). When bc1Alpha is true, texels whose alpha is below 128 are
// treated as transparent and excluded from the fit, same as mask exclusion,
// and pointSet.transparent is set so the colour encoder knows to consider
// the three-colour punch-through palette. When weighByAlpha is true, each
// surviving texel's weight is scaled by (alpha+1)/256 before accumulation.
func newPointSet(b block, mask uint16, bc1Alpha, weighByAlpha bool) pointSet {
	var ps pointSet
	ps.points = make([]vec3, 0, 16)
	ps.weights = make([]float32, 0, 16)

	for i := 0; i < 16; i++ {
		ps.remap[i] = -1

		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if bc1Alpha && b[i].A < 128 {
			ps.transparent = true
			continue
		}

		c := vec3{
			float32(b[i].R) / 255,
			float32(b[i].G) / 255,
			float32(b[i].B) / 255,
		}

		w := float32(1)
		if weighByAlpha {
			w = float32(int(b[i].A)+1) / 256
		}

		matched := -1
		for j, p := range ps.points {
			if p == c {
				matched = j
				break
			}
		}
		if matched >= 0 {
			ps.weights[matched] += w
			ps.remap[i] = int8(matched)
			continue
		}

		ps.points = append(ps.points, c)
		ps.weights = append(ps.weights, w)
		ps.remap[i] = int8(len(ps.points) - 1)
	}

	// Replace accumulated weights with their square roots in place: every
	// downstream consumer (covariance, cluster/range least squares) treats
	// ps.weights as already-linear once it reappears squared in their own
	// quadratic terms.
	for i, w := range ps.weights {
		ps.weights[i] = float32(math.Sqrt(float64(w)))
	}

	return ps
}

// count returns the number of distinct colours in the set.
func (ps pointSet) count() int { return len(ps.points) }

// remapIndices expands per-point palette indices (0-3) back out to the
// original 16 texel positions, using -1 to carry through the BC1
// punch-through transparent index (3) for excluded texels.
func (ps pointSet) remapIndices(pointIndices []uint8, transparentIndex uint8) [16]uint8 {
	var out [16]uint8
	for i, r := range ps.remap {
		if r < 0 {
			out[i] = transparentIndex
			continue
		}
		out[i] = pointIndices[r]
	}
	return out
}

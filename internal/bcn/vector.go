package bcn

import "math"

// vec3 is a 3-lane float vector used for RGB colour arithmetic in [0,1]^3.
type vec3 struct {
	x, y, z float32
}

func newVec3(x, y, z float32) vec3 { return vec3{x, y, z} }

func (a vec3) add(b vec3) vec3 { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) sub(b vec3) vec3 { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec3) mul(b vec3) vec3 { return vec3{a.x * b.x, a.y * b.y, a.z * b.z} }
func (a vec3) scale(s float32) vec3 {
	return vec3{a.x * s, a.y * s, a.z * s}
}

func (a vec3) dot(b vec3) float32 { return a.x*b.x + a.y*b.y + a.z*b.z }

func (a vec3) min(b vec3) vec3 {
	return vec3{minf32(a.x, b.x), minf32(a.y, b.y), minf32(a.z, b.z)}
}

func (a vec3) max(b vec3) vec3 {
	return vec3{maxf32(a.x, b.x), maxf32(a.y, b.y), maxf32(a.z, b.z)}
}

// truncate rounds each component toward zero.
func (a vec3) truncate() vec3 {
	return vec3{float32(math.Trunc(float64(a.x))), float32(math.Trunc(float64(a.y))), float32(math.Trunc(float64(a.z)))}
}

func (a vec3) length2() float32 { return a.dot(a) }

func (a vec3) clampUnit() vec3 {
	one := vec3{1, 1, 1}
	zero := vec3{0, 0, 0}
	return one.min(zero.max(a))
}

// snapToGrid clamps a to [0,1]^3 and snaps each channel to the nearest
// representable value on the 5-6-5 grid.
func (a vec3) snapToGrid() vec3 {
	grid := vec3{31, 63, 31}
	gridRcp := vec3{1.0 / 31.0, 1.0 / 63.0, 1.0 / 31.0}
	half := vec3{0.5, 0.5, 0.5}
	c := a.clampUnit()
	return grid.mul(c).add(half).truncate().mul(gridRcp)
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// vec4 is a 4-lane float vector, used as the power-iteration vector for
// sym3x3; only its xyz lanes feed the result.
type vec4 struct {
	x, y, z, w float32
}

func newVec4(x, y, z, w float32) vec4 { return vec4{x, y, z, w} }

func (a vec4) toVec3() vec3 { return vec3{a.x, a.y, a.z} }

func (a vec4) add(b vec4) vec4 {
	return vec4{a.x + b.x, a.y + b.y, a.z + b.z, a.w + b.w}
}

func (a vec4) sub(b vec4) vec4 {
	return vec4{a.x - b.x, a.y - b.y, a.z - b.z, a.w - b.w}
}

func (a vec4) mul(b vec4) vec4 {
	return vec4{a.x * b.x, a.y * b.y, a.z * b.z, a.w * b.w}
}

func (a vec4) scale(s float32) vec4 {
	return vec4{a.x * s, a.y * s, a.z * s, a.w * s}
}

func (a vec4) splatX() vec4 { return vec4{a.x, a.x, a.x, a.x} }
func (a vec4) splatY() vec4 { return vec4{a.y, a.y, a.y, a.y} }
func (a vec4) splatZ() vec4 { return vec4{a.z, a.z, a.z, a.z} }
func (a vec4) splatW() vec4 { return vec4{a.w, a.w, a.w, a.w} }

func (a vec4) min(b vec4) vec4 {
	return vec4{minf32(a.x, b.x), minf32(a.y, b.y), minf32(a.z, b.z), minf32(a.w, b.w)}
}

func (a vec4) max(b vec4) vec4 {
	return vec4{maxf32(a.x, b.x), maxf32(a.y, b.y), maxf32(a.z, b.z), maxf32(a.w, b.w)}
}

func (a vec4) truncate() vec4 {
	return vec4{
		float32(math.Trunc(float64(a.x))),
		float32(math.Trunc(float64(a.y))),
		float32(math.Trunc(float64(a.z))),
		float32(math.Trunc(float64(a.w))),
	}
}

func (a vec4) reciprocal() vec4 {
	return vec4{1 / a.x, 1 / a.y, 1 / a.z, 1 / a.w}
}

func (a vec4) anyLessThan(b vec4) bool {
	return a.x < b.x || a.y < b.y || a.z < b.z || a.w < b.w
}

func (a vec4) clampUnit() vec4 {
	one := vec4{1, 1, 1, 1}
	zero := vec4{0, 0, 0, 0}
	return one.min(zero.max(a))
}

// snapToGrid clamps the xyz lanes to [0,1] and snaps them to the 5-6-5
// grid; the w lane comes out as zero.
func (a vec4) snapToGrid() vec4 {
	grid := vec4{31, 63, 31, 0}
	gridRcp := vec4{1.0 / 31.0, 1.0 / 63.0, 1.0 / 31.0, 0}
	half := vec4{0.5, 0.5, 0.5, 0.5}
	c := a.clampUnit()
	return grid.mul(c).add(half).truncate().mul(gridRcp)
}

// sym3x3 holds the six unique coefficients of a symmetric 3x3 matrix.
type sym3x3 struct {
	// m stores [xx, xy, xz, yy, yz, zz].
	m [6]float32
}

// weightedCovariance computes the weighted centroid of points and
// accumulates the weighted covariance matrix about it.
func weightedCovariance(points []vec3, weights []float32) sym3x3 {
	var total float32
	var centroid vec3
	for i, w := range weights {
		total += w
		centroid = centroid.add(points[i].scale(w))
	}
	if total > epsilon {
		centroid = centroid.scale(1 / total)
	}

	var cov sym3x3
	for i, w := range weights {
		a := points[i].sub(centroid)
		b := a.scale(w)
		cov.m[0] += a.x * b.x
		cov.m[1] += a.x * b.y
		cov.m[2] += a.x * b.z
		cov.m[3] += a.y * b.y
		cov.m[4] += a.y * b.z
		cov.m[5] += a.z * b.z
	}
	return cov
}

const epsilon = 1e-7

// principalComponent returns the dominant eigenvector of the matrix via 8
// fixed iterations of power iteration, starting at (1,1,1,0). The
// iteration count is fixed, not tolerance-driven, so results are
// deterministic and match the reference implementation this codec is
// modelled on.
func (s sym3x3) principalComponent() vec3 {
	const iterations = 8

	row0 := vec4{s.m[0], s.m[1], s.m[2], 0}
	row1 := vec4{s.m[1], s.m[3], s.m[4], 0}
	row2 := vec4{s.m[2], s.m[4], s.m[5], 0}
	v := vec4{1, 1, 1, 0}

	for i := 0; i < iterations; i++ {
		w := row0.scale(v.x)
		w = row1.scale(v.y).add(w)
		w = row2.scale(v.z).add(w)

		a := maxf32(w.x, maxf32(w.y, w.z))
		v = w.scale(1 / a)
	}

	return v.toVec3()
}

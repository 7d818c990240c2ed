package bcn

import "testing"

func TestVec3Arithmetic(t *testing.T) {
	t.Parallel()

	a := vec3{1, 2, 3}
	b := vec3{4, 5, 6}

	if got := a.add(b); got != (vec3{5, 7, 9}) {
		t.Fatalf("add = %+v, want {5 7 9}", got)
	}
	if got := b.sub(a); got != (vec3{3, 3, 3}) {
		t.Fatalf("sub = %+v, want {3 3 3}", got)
	}
	if got := a.dot(b); got != 32 {
		t.Fatalf("dot = %v, want 32", got)
	}
	if got := a.scale(2); got != (vec3{2, 4, 6}) {
		t.Fatalf("scale = %+v, want {2 4 6}", got)
	}
}

func TestClampUnit(t *testing.T) {
	t.Parallel()

	got := vec3{-1, 0.5, 2}.clampUnit()
	want := vec3{0, 0.5, 1}
	if got != want {
		t.Fatalf("clampUnit = %+v, want %+v", got, want)
	}
}

func TestSnapToGridMatchesPack565Precision(t *testing.T) {
	t.Parallel()

	c := vec3{0.31, 0.62, 0.11}
	snapped := c.snapToGrid()
	packed := pack565(snapped)
	repacked := pack565(c)
	if packed != repacked {
		t.Fatalf("snapToGrid then pack565 (%#04x) should match pack565 directly (%#04x)", packed, repacked)
	}
}

func TestWeightedCovarianceZeroForSinglePoint(t *testing.T) {
	t.Parallel()

	points := []vec3{{0.2, 0.4, 0.6}}
	weights := []float32{1}
	cov := weightedCovariance(points, weights)
	for _, m := range cov.m {
		if m != 0 {
			t.Fatalf("covariance of a single point should be zero, got %+v", cov.m)
		}
	}
}

func TestPrincipalComponentAlignsWithSpread(t *testing.T) {
	t.Parallel()

	// Points spread along the x axis only: the dominant eigenvector should
	// point mostly along x.
	points := []vec3{{0, 0.5, 0.5}, {1, 0.5, 0.5}}
	weights := []float32{1, 1}
	cov := weightedCovariance(points, weights)
	axis := cov.principalComponent()

	if axis.x*axis.x <= axis.y*axis.y || axis.x*axis.x <= axis.z*axis.z {
		t.Fatalf("principal axis %+v does not dominate along x", axis)
	}
}

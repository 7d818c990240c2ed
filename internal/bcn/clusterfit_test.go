package bcn

import "testing"

func squaredError(tile, decoded [16]ColorRGBA) int {
	var total int
	for i := range tile {
		dr := int(tile[i].R) - int(decoded[i].R)
		dg := int(tile[i].G) - int(decoded[i].G)
		db := int(tile[i].B) - int(decoded[i].B)
		total += dr*dr + dg*dg + db*db
	}
	return total
}

// ClusterFit exhaustively searches partitions, so it should never produce
// a worse fit than RangeFit's single heuristic pass on a block with enough
// distinct colours to matter, and IterativeClusterFit never a worse fit
// than ClusterFit.
func TestClusterFitNeverWorseThanRangeFit(t *testing.T) {
	t.Parallel()

	tile := [16]ColorRGBA{
		{R: 10, G: 200, B: 30, A: 255}, {R: 250, G: 10, B: 40, A: 255},
		{R: 30, G: 180, B: 220, A: 255}, {R: 90, G: 90, B: 90, A: 255},
		{R: 200, G: 200, B: 10, A: 255}, {R: 10, G: 10, B: 200, A: 255},
		{R: 150, G: 75, B: 200, A: 255}, {R: 60, G: 160, B: 60, A: 255},
		{R: 10, G: 200, B: 30, A: 255}, {R: 250, G: 10, B: 40, A: 255},
		{R: 30, G: 180, B: 220, A: 255}, {R: 90, G: 90, B: 90, A: 255},
		{R: 200, G: 200, B: 10, A: 255}, {R: 10, G: 10, B: 200, A: 255},
		{R: 150, G: 75, B: 200, A: 255}, {R: 60, G: 160, B: 60, A: 255},
	}

	rangeParams := Params{Algorithm: RangeFit, Weights: WeightsUniform}
	clusterParams := Params{Algorithm: ClusterFit, Weights: WeightsUniform}
	iterParams := Params{Algorithm: IterativeClusterFit, Weights: WeightsUniform}

	rangeDst := make([]byte, 8)
	clusterDst := make([]byte, 8)
	iterDst := make([]byte, 8)
	CompressBlock(FormatBC1, tile, rangeParams, rangeDst)
	CompressBlock(FormatBC1, tile, clusterParams, clusterDst)
	CompressBlock(FormatBC1, tile, iterParams, iterDst)

	rangeErr := squaredError(tile, DecompressBlock(FormatBC1, rangeDst))
	clusterErr := squaredError(tile, DecompressBlock(FormatBC1, clusterDst))
	iterErr := squaredError(tile, DecompressBlock(FormatBC1, iterDst))

	if clusterErr > rangeErr {
		t.Fatalf("cluster fit error %d exceeds range fit error %d", clusterErr, rangeErr)
	}
	if iterErr > clusterErr {
		t.Fatalf("iterative cluster fit error %d exceeds single-pass cluster fit error %d", iterErr, clusterErr)
	}
}

func TestFitClusterFourColourIndexAssignmentIsContiguousInAxisOrder(t *testing.T) {
	t.Parallel()

	var tile block
	colours := []ColorRGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 80, G: 80, B: 80, A: 255},
		{R: 180, G: 180, B: 180, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for i := range tile {
		tile[i] = colours[i%4]
	}

	ps := newPointSet(tile, 0xFFFF, false, false)
	start, end, indices := fitCluster(ps, WeightsUniform, false, false)

	if start == end {
		t.Fatal("expected distinct endpoints for a 4-level gradient")
	}
	// Every point must resolve to one of the 4 valid palette indices.
	for i, idx := range indices {
		if idx > 3 {
			t.Fatalf("texel %d index = %d, out of range", i, idx)
		}
	}

	// Texels 0..3 hold the four levels in axis order. Contiguous runs give
	// palette indices 0, 2, 3, 1 from one end of the axis to the other, so
	// each texel's position in that sequence must not decrease.
	rank := [4]int{0, 3, 1, 2} // palette index -> position along the axis
	for i := 1; i < 4; i++ {
		if rank[indices[i]] < rank[indices[i-1]] {
			t.Fatalf("indices %v are not contiguous in axis order", indices[:4])
		}
	}
}

func TestSolveEndpointsRejectsDegenerateSystem(t *testing.T) {
	t.Parallel()

	_, _, ok := solveEndpoints(vec3{}, vec3{}, 0, 0, 0)
	if ok {
		t.Fatal("solveEndpoints should reject a fully degenerate (all-zero) system")
	}
}

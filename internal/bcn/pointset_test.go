package bcn

import "testing"

func TestNewPointSetDeduplicatesAndAccumulatesWeights(t *testing.T) {
	t.Parallel()

	var tile block
	for i := range tile {
		tile[i] = ColorRGBA{R: 10, G: 20, B: 30, A: 255}
	}
	// One texel differs; the other 15 share the same colour.
	tile[5] = ColorRGBA{R: 200, G: 200, B: 200, A: 255}

	ps := newPointSet(tile, 0xFFFF, false, false)
	if ps.count() != 2 {
		t.Fatalf("count() = %d, want 2", ps.count())
	}

	var total float32
	for _, w := range ps.weights {
		total += w * w // weights were sqrt'd in place; square back to compare counts
	}
	if total != 16 {
		t.Fatalf("sum of squared weights = %v, want 16 (one weight per texel)", total)
	}
}

func TestNewPointSetMasksExcludedTexels(t *testing.T) {
	t.Parallel()

	var tile block
	for i := range tile {
		tile[i] = ColorRGBA{R: uint8(i * 10), G: 0, B: 0, A: 255}
	}

	ps := newPointSet(tile, 0x0001, false, false) // only texel 0 valid
	if ps.count() != 1 {
		t.Fatalf("count() = %d, want 1", ps.count())
	}
	for i, r := range ps.remap {
		if i == 0 {
			if r != 0 {
				t.Fatalf("remap[0] = %d, want 0", r)
			}
			continue
		}
		if r != -1 {
			t.Fatalf("remap[%d] = %d, want -1 (masked)", i, r)
		}
	}
}

func TestNewPointSetBC1AlphaExclusion(t *testing.T) {
	t.Parallel()

	var tile block
	for i := range tile {
		tile[i] = ColorRGBA{R: 100, G: 100, B: 100, A: 255}
	}
	tile[0].A = 0 // below the 128 punch-through threshold

	ps := newPointSet(tile, 0xFFFF, true, false)
	if !ps.transparent {
		t.Fatal("transparent = false, want true when a texel falls below the alpha threshold")
	}
	if ps.remap[0] != -1 {
		t.Fatalf("remap[0] = %d, want -1 for a transparent texel", ps.remap[0])
	}
	if ps.count() != 1 {
		t.Fatalf("count() = %d, want 1 (the 15 opaque texels collapse to one point)", ps.count())
	}
}

func TestNewPointSetWeighByAlpha(t *testing.T) {
	t.Parallel()

	var tile block
	for i := range tile {
		tile[i] = ColorRGBA{R: 50, G: 50, B: 50, A: 255}
	}
	tile[0].A = 0 // same colour, but distinguishable by weight contribution

	ps := newPointSet(tile, 0xFFFF, false, true)
	if ps.count() != 1 {
		t.Fatalf("count() = %d, want 1 (colour is identical across all 16 texels)", ps.count())
	}
	// weight = sqrt(sum((alpha+1)/256)); texel 0 contributes 1/256, the
	// other 15 contribute 256/256 each.
	want := float32(1.0/256.0 + 15*256.0/256.0)
	got := ps.weights[0] * ps.weights[0]
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > 1e-4 {
		t.Fatalf("accumulated weight^2 = %v, want %v", got, want)
	}
}

func TestRemapIndicesCarriesThroughTransparentIndex(t *testing.T) {
	t.Parallel()

	ps := pointSet{}
	ps.remap = [16]int8{0: 0, 1: -1}
	out := ps.remapIndices([]uint8{2}, 3)
	if out[0] != 2 {
		t.Fatalf("out[0] = %d, want 2", out[0])
	}
	if out[1] != 3 {
		t.Fatalf("out[1] = %d, want 3 (transparent index)", out[1])
	}
}

package bcn

import "testing"

func TestExpandComponentReplicatesHighBits(t *testing.T) {
	t.Parallel()

	if got := expandComponent(31, 5); got != 255 {
		t.Fatalf("expandComponent(31, 5) = %d, want 255", got)
	}
	if got := expandComponent(0, 5); got != 0 {
		t.Fatalf("expandComponent(0, 5) = %d, want 0", got)
	}
	if got := expandComponent(63, 6); got != 255 {
		t.Fatalf("expandComponent(63, 6) = %d, want 255", got)
	}
}

func TestFitSingleColourFlatBlock(t *testing.T) {
	t.Parallel()

	var tile block
	for i := range tile {
		tile[i] = ColorRGBA{R: 128, G: 64, B: 32, A: 255}
	}
	ps := newPointSet(tile, 0xFFFF, false, false)
	if ps.count() != 1 {
		t.Fatalf("count() = %d, want 1", ps.count())
	}

	start, end, indices := fitSingleColour(ps, false)
	mid := start.scale(2.0 / 3.0).add(end.scale(1.0 / 3.0))
	mid2 := start.scale(1.0 / 3.0).add(end.scale(2.0 / 3.0))
	palette := []vec3{start, end, mid, mid2}

	target := vec3{128.0 / 255.0, 64.0 / 255.0, 32.0 / 255.0}
	for i, idx := range indices {
		got := palette[idx]
		d := got.sub(target)
		if d.length2() > 0.01 {
			t.Fatalf("texel %d: palette entry %d = %+v is far from target %+v", i, idx, got, target)
		}
	}
}

func TestFitSingleColourAllTexelsShareOneIndex(t *testing.T) {
	t.Parallel()

	var tile block
	for i := range tile {
		tile[i] = ColorRGBA{R: 10, G: 200, B: 90, A: 255}
	}
	ps := newPointSet(tile, 0xFFFF, false, false)
	_, _, indices := fitSingleColour(ps, false)

	first := indices[0]
	for i, idx := range indices {
		if idx != first {
			t.Fatalf("texel %d index = %d, want %d (all texels share one colour)", i, idx, first)
		}
	}
}

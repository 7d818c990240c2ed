package bcn

// Single-colour fitter: used whenever a block's point set collapses to
// exactly one distinct colour (the common case for flat-shaded regions).
// Rather than running the range or cluster fitter's general machinery on a
// single point, the best 5-6-5 endpoint pair is looked up directly from a
// table built once at package initialisation.
//
// The table generator that ships with the reference codec this is modelled
// on was not available to translate, so singleFitTables is built here by
// exhaustive search: for every possible 8bpp target value and every
// (bit-depth, palette-size) combination, try every quantised (start, end,
// index) triple and keep the one with least squared error. That is the same
// result the reference table encodes, just computed instead of copied.

type singleFitEntry struct {
	start, end, index uint8
	err               float32
}

// singleFitTables[bitsIdx][threeColourIdx][target] holds the best match for
// an 8bpp target value at a given channel precision (5 or 6 bits) and
// palette size (three-colour punch-through or four-colour).
var singleFitTables [2][2][256]singleFitEntry

func init() {
	buildSingleFitTable(0, 5, false)
	buildSingleFitTable(0, 5, true)
	buildSingleFitTable(1, 6, false)
	buildSingleFitTable(1, 6, true)
}

func buildSingleFitTable(bitsIdx, bits int, threeColour bool) {
	threeIdx := 0
	if threeColour {
		threeIdx = 1
	}
	maxVal := (1 << uint(bits)) - 1
	table := &singleFitTables[bitsIdx][threeIdx]

	for target := 0; target < 256; target++ {
		best := singleFitEntry{err: -1}
		for start := 0; start <= maxVal; start++ {
			start8 := expandComponent(start, bits)
			for end := 0; end <= maxVal; end++ {
				end8 := expandComponent(end, bits)

				values := singlePaletteValues(start8, end8, threeColour)
				for idx, v := range values {
					d := float32(v) - float32(target)
					e := d * d
					if best.err < 0 || e < best.err {
						best = singleFitEntry{
							start: uint8(start),
							end:   uint8(end),
							index: uint8(idx),
							err:   e,
						}
					}
				}
			}
		}
		table[target] = best
	}
}

// singlePaletteValues returns the palette this single-colour sub-block
// would decode to, in the same index order decompressColour uses: for the
// four-colour palette {start, end, (2*start+end)/3, (start+2*end)/3}, for
// the three-colour palette {start, end, (start+end)/2}.
func singlePaletteValues(start8, end8 uint8, threeColour bool) []int {
	s, e := int(start8), int(end8)
	if threeColour {
		return []int{s, e, (s + e) / 2}
	}
	return []int{s, e, (2*s + e) / 3, (s + 2*e) / 3}
}

func expandComponent(v, bits int) uint8 {
	if bits == 5 {
		return uint8((v << 3) | (v >> 2))
	}
	return uint8((v << 2) | (v >> 4))
}

// fitSingleColour builds the endpoint pair and full 16-texel index array
// for a point set known to contain exactly one distinct colour. threeColour
// selects the punch-through-alpha three-colour palette (used when the BC1
// block has any transparent texels) over the plain four-colour palette.
func fitSingleColour(ps pointSet, threeColour bool) (start, end vec3, indices [16]uint8) {
	c := ps.points[0]
	r := uint8(roundClampedI32(255*c.x, 255))
	g := uint8(roundClampedI32(255*c.y, 255))
	b := uint8(roundClampedI32(255*c.z, 255))

	threeIdx := 0
	if threeColour {
		threeIdx = 1
	}
	rEntry := singleFitTables[0][threeIdx][r]
	gEntry := singleFitTables[1][threeIdx][g]
	bEntry := singleFitTables[0][threeIdx][b]

	start = vec3{
		float32(rEntry.start) / 31,
		float32(gEntry.start) / 63,
		float32(bEntry.start) / 31,
	}
	end = vec3{
		float32(rEntry.end) / 31,
		float32(gEntry.end) / 63,
		float32(bEntry.end) / 31,
	}

	// The three per-channel tables each picked their own best quantised
	// start/end independently; the palette index actually used, however,
	// has to be the same index for all three channels at once (it selects
	// one point in the combined RGB palette). Re-derive the best shared
	// index against the true target now that start/end are fixed.
	rStart8, gStart8, bStart8 := expandComponent(int(rEntry.start), 5), expandComponent(int(gEntry.start), 6), expandComponent(int(bEntry.start), 5)
	rEnd8, gEnd8, bEnd8 := expandComponent(int(rEntry.end), 5), expandComponent(int(gEntry.end), 6), expandComponent(int(bEntry.end), 5)

	rValues := singlePaletteValues(rStart8, rEnd8, threeColour)
	gValues := singlePaletteValues(gStart8, gEnd8, threeColour)
	bValues := singlePaletteValues(bStart8, bEnd8, threeColour)

	index := uint8(0)
	bestErr := float32(-1)
	for i := range rValues {
		dr := float32(rValues[i]) - float32(r)
		dg := float32(gValues[i]) - float32(g)
		db := float32(bValues[i]) - float32(b)
		e := dr*dr + dg*dg + db*db
		if bestErr < 0 || e < bestErr {
			bestErr = e
			index = uint8(i)
		}
	}

	for i, rm := range ps.remap {
		if rm < 0 {
			indices[i] = 3
			continue
		}
		indices[i] = index
	}
	return start, end, indices
}

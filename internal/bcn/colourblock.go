package bcn

import "math"

// roundClampedI32 rounds x half-away-from-zero and clamps to [0, limit].
// This quantiser is used pervasively by the fitters; changing its
// rounding mode shifts every canonical test vector by one LSB.
func roundClampedI32(x float32, limit int32) int32 {
	r := int32(math.Round(float64(x)))
	if r < 0 {
		return 0
	}
	if r > limit {
		return limit
	}
	return r
}

// pack565 quantises a colour in [0,1]^3 to a 5-6-5 word, R in the high
// bits: bit15..11 = R, bit10..5 = G, bit4..0 = B. Callers write this value
// little-endian, which is what gives the wire format its
// "gggbbbbb rrrrrggg" low-byte-first layout.
func pack565(c vec3) uint16 {
	r := uint16(roundClampedI32(31*c.x, 31))
	g := uint16(roundClampedI32(63*c.y, 63))
	b := uint16(roundClampedI32(31*c.z, 31))
	return (r << 11) | (g << 5) | b
}

// unpack565 expands a little-endian 5-6-5 word to 8bpc RGBA with A=255.
func unpack565(v uint16) ColorRGBA {
	r5 := uint8((v >> 11) & 0x1F)
	g6 := uint8((v >> 5) & 0x3F)
	b5 := uint8(v & 0x1F)

	return ColorRGBA{
		R: (r5 << 3) | (r5 >> 2),
		G: (g6 << 2) | (g6 >> 4),
		B: (b5 << 3) | (b5 >> 2),
		A: 255,
	}
}

func packIndices(indices [16]uint8) [4]byte {
	var packed [4]byte
	for i := range packed {
		packed[i] = (indices[4*i] & 0x03) |
			((indices[4*i+1] & 0x03) << 2) |
			((indices[4*i+2] & 0x03) << 4) |
			((indices[4*i+3] & 0x03) << 6)
	}
	return packed
}

func writeColourBlock(a, b uint16, indices [16]uint8, out []byte) {
	out[0] = byte(a)
	out[1] = byte(a >> 8)
	out[2] = byte(b)
	out[3] = byte(b >> 8)
	packed := packIndices(indices)
	copy(out[4:8], packed[:])
}

// writeThree packs a BC1 punch-through-alpha colour sub-block, swapping
// endpoints and remapping indices 0<->1 if pack565 produced them in the
// wrong order for the three-colour palette (requires a <= b).
func writeThree(start, end vec3, indices [16]uint8, out []byte) {
	a := pack565(start)
	b := pack565(end)

	remapped := indices
	if a > b {
		a, b = b, a
		for i, idx := range remapped {
			switch idx {
			case 0:
				remapped[i] = 1
			case 1:
				remapped[i] = 0
			}
		}
	}

	writeColourBlock(a, b, remapped, out)
}

// writeFour packs a four-colour-palette sub-block (BC1 non-punch-through,
// or BC2/BC3's colour half), requiring a > b; if equal, all indices
// collapse to 0.
func writeFour(start, end vec3, indices [16]uint8, out []byte) {
	a := pack565(start)
	b := pack565(end)

	var remapped [16]uint8
	switch {
	case a < b:
		a, b = b, a
		for i, idx := range indices {
			remapped[i] = (idx ^ 0x01) & 0x03
		}
	case a > b:
		remapped = indices
	default:
		// remapped is already all-zero
	}

	writeColourBlock(a, b, remapped, out)
}

// decompressColour rebuilds a 4x4 RGBA tile from an 8-byte BC1/2/3 colour
// sub-block. isBC1 selects whether endpoint_a<=endpoint_b triggers BC1's
// punch-through transparency rule.
func decompressColour(data []byte, isBC1 bool) block {
	a16 := uint16(data[0]) | uint16(data[1])<<8
	b16 := uint16(data[2]) | uint16(data[3])<<8

	colour0 := unpack565(a16)
	colour1 := unpack565(b16)

	punchThrough := isBC1 && a16 <= b16

	var colour2, colour3 ColorRGBA
	if punchThrough {
		colour2 = mixHalf(colour0, colour1)
		colour3 = ColorRGBA{}
	} else {
		colour2 = mixThird(colour0, colour1, 2, 1)
		colour3 = mixThird(colour0, colour1, 1, 2)
		colour2.A = 255
		colour3.A = 255
	}
	if punchThrough {
		colour2.A = 255
	}

	palette := [4]ColorRGBA{colour0, colour1, colour2, colour3}

	packed := uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24

	var out block
	for i := 0; i < 16; i++ {
		idx := (packed >> (2 * uint(i))) & 0x3
		out[i] = palette[idx]
	}
	return out
}

func mixHalf(a, b ColorRGBA) ColorRGBA {
	return ColorRGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
	}
}

// mixThird computes (wa*a + wb*b)/3, wa+wb==3.
func mixThird(a, b ColorRGBA, wa, wb uint16) ColorRGBA {
	return ColorRGBA{
		R: uint8((wa*uint16(a.R) + wb*uint16(b.R)) / 3),
		G: uint8((wa*uint16(a.G) + wb*uint16(b.G)) / 3),
		B: uint8((wa*uint16(a.B) + wb*uint16(b.B)) / 3),
	}
}

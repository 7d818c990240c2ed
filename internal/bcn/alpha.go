package bcn

// Alpha sub-block codec for BC2 (explicit 4-bit) and BC3/BC4/BC5 (8-bit
// endpoints + 3-bit indices, parameterised by the channel being encoded so
// BC3 can drive it against alpha, BC4 against channel 0, and BC5 against
// channels 0 and 1).

// encodeAlphaBC2 packs sixteen 4-bit explicit alpha values, two per byte,
// low nibble first. Masked texels encode as zero.
func encodeAlphaBC2(b block, mask uint16, out []byte) {
	for i := 0; i < 8; i++ {
		lo := quantizeNibble(b[2*i].A, mask, 2*i)
		hi := quantizeNibble(b[2*i+1].A, mask, 2*i+1)
		out[i] = lo | (hi << 4)
	}
}

func quantizeNibble(alpha uint8, mask uint16, texel int) uint8 {
	if mask&(1<<uint(texel)) == 0 {
		return 0
	}
	v := uint32(roundClampedI32(float32(alpha)*(15.0/255.0), 15))
	return uint8(v)
}

// decodeAlphaBC2 unpacks an 8-byte explicit-alpha sub-block into the
// alpha channel of a 4x4 tile.
func decodeAlphaBC2(b *block, data []byte) {
	for i := 0; i < 8; i++ {
		v := data[i]
		lo := v & 0x0F
		hi := v >> 4
		b[2*i].A = lo | (lo << 4)
		b[2*i+1].A = hi | (hi << 4)
	}
}

// alphaPalette builds the 8-entry interpolated alpha codebook. If
// a0 > a1, it builds the 8-point palette (6 interpolated values between
// the endpoints); otherwise the 6-point palette plus constants 0 and 255.
func alphaPalette(a0, a1 uint8) [8]uint8 {
	var codes [8]uint8
	codes[0] = a0
	codes[1] = a1
	if a0 > a1 {
		for i := int32(1); i < 7; i++ {
			codes[1+i] = uint8(((7-i)*int32(a0) + i*int32(a1)) / 7)
		}
	} else {
		for i := int32(1); i < 5; i++ {
			codes[1+i] = uint8(((5-i)*int32(a0) + i*int32(a1)) / 5)
		}
		codes[6] = 0
		codes[7] = 255
	}
	return codes
}

// fixAlphaRange grows max first, then shrinks min, so that max-min is at
// least steps, clamping to [0,255].
func fixAlphaRange(min, max *uint8, steps int32) {
	if int32(*max)-int32(*min) < steps {
		grown := int32(*min) + steps
		if grown > 255 {
			grown = 255
		}
		*max = uint8(grown)
	}
	if int32(*max)-int32(*min) < steps {
		shrunk := int32(*max) - steps
		if shrunk < 0 {
			shrunk = 0
		}
		*min = uint8(shrunk)
	}
}

// fitAlphaCodes assigns every valid texel of channel to its nearest code
// in codes, accumulating squared error. Masked texels get index 0.
func fitAlphaCodes(b block, channel int, mask uint16, codes [8]uint8, indices *[16]uint8) uint32 {
	var totalErr uint32
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			indices[i] = 0
			continue
		}

		value := int32(channelValue(b[i], channel))
		least := uint32(1<<31 - 1)
		var best uint8
		for j, code := range codes {
			d := value - int32(code)
			sq := uint32(d * d)
			if sq < least {
				least = sq
				best = uint8(j)
			}
		}
		indices[i] = best
		totalErr += least
	}
	return totalErr
}

func channelValue(c ColorRGBA, channel int) uint8 {
	switch channel {
	case 0:
		return c.R
	case 1:
		return c.G
	case 2:
		return c.B
	default:
		return c.A
	}
}

func setChannelValue(c *ColorRGBA, channel int, v uint8) {
	switch channel {
	case 0:
		c.R = v
	case 1:
		c.G = v
	case 2:
		c.B = v
	default:
		c.A = v
	}
}

func packAlphaIndices(indices [16]uint8) [6]byte {
	var packed [6]byte
	for half := 0; half < 2; half++ {
		var value uint32
		for j := 0; j < 8; j++ {
			value |= uint32(indices[8*half+j]&0x7) << (3 * uint(j))
		}
		packed[3*half+0] = byte(value)
		packed[3*half+1] = byte(value >> 8)
		packed[3*half+2] = byte(value >> 16)
	}
	return packed
}

func unpackAlphaIndices(data []byte) [16]uint8 {
	var indices [16]uint8
	for half := 0; half < 2; half++ {
		value := uint32(data[3*half]) | uint32(data[3*half+1])<<8 | uint32(data[3*half+2])<<16
		for j := 0; j < 8; j++ {
			indices[8*half+j] = uint8((value >> (3 * uint(j))) & 0x7)
		}
	}
	return indices
}

func writeAlphaBlock(a0, a1 uint8, indices [16]uint8, out []byte) {
	out[0] = a0
	out[1] = a1
	packed := packAlphaIndices(indices)
	copy(out[2:8], packed[:])
}

// writeAlphaBlock8 serialises the 8-point-palette result, swapping
// endpoints (and remapping indices) if a0 <= a1 would otherwise flip the
// decoder's 8-point/6-point disambiguation.
func writeAlphaBlock8(a0, a1 uint8, indices [16]uint8, out []byte) {
	if a0 <= a1 {
		var swapped [16]uint8
		for i, idx := range indices {
			switch {
			case idx == 0:
				swapped[i] = 1
			case idx == 1:
				swapped[i] = 0
			default:
				swapped[i] = uint8(9 - int(idx))
			}
		}
		writeAlphaBlock(a1, a0, swapped, out)
		return
	}
	writeAlphaBlock(a0, a1, indices, out)
}

// writeAlphaBlock6 serialises the 6-point-palette result, swapping
// endpoints if a0 > a1 would otherwise flip the decoder's rule.
func writeAlphaBlock6(a0, a1 uint8, indices [16]uint8, out []byte) {
	if a0 > a1 {
		var swapped [16]uint8
		for i, idx := range indices {
			switch {
			case idx == 0:
				swapped[i] = 1
			case idx == 1:
				swapped[i] = 0
			case idx >= 2 && idx <= 5:
				swapped[i] = uint8(7 - int(idx))
			default:
				swapped[i] = idx
			}
		}
		writeAlphaBlock(a1, a0, swapped, out)
		return
	}
	writeAlphaBlock(a0, a1, indices, out)
}

// encodeAlphaChannel encodes the given channel of b into an 8-byte
// BC3/BC4/BC5-style gradient sub-block: endpoints chosen to enforce a
// minimum span, both the 8-point and 6-point palettes tried, the smaller-
// error one kept.
func encodeAlphaChannel(b block, channel int, mask uint16, out []byte) {
	min7, max7 := uint8(255), uint8(0)
	min5, max5 := uint8(255), uint8(0)
	sawAny := false

	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		sawAny = true
		v := channelValue(b[i], channel)
		if v < min7 {
			min7 = v
		}
		if v > max7 {
			max7 = v
		}
		if v != 0 && v < min5 {
			min5 = v
		}
		if v != 255 && v > max5 {
			max5 = v
		}
	}
	if !sawAny {
		min7, max7 = 0, 0
		min5, max5 = 0, 0
	}
	if min5 > max5 {
		min5 = max5
	}
	if min7 > max7 {
		min7 = max7
	}

	fixAlphaRange(&min5, &max5, 5)
	fixAlphaRange(&min7, &max7, 7)

	codes6 := alphaPalette(min5, max5)
	codes8 := alphaPalette(max7, min7)

	var indices6, indices8 [16]uint8
	err6 := fitAlphaCodes(b, channel, mask, codes6, &indices6)
	err8 := fitAlphaCodes(b, channel, mask, codes8, &indices8)

	if err6 <= err8 {
		writeAlphaBlock6(min5, max5, indices6, out)
	} else {
		writeAlphaBlock8(max7, min7, indices8, out)
	}
}

// decodeAlphaChannel decodes an 8-byte BC3/BC4/BC5-style gradient
// sub-block into the given channel of a 4x4 tile.
func decodeAlphaChannel(b *block, channel int, data []byte) {
	a0, a1 := data[0], data[1]
	codes := alphaPalette(a0, a1)
	indices := unpackAlphaIndices(data[2:8])
	for i := 0; i < 16; i++ {
		setChannelValue(&b[i], channel, codes[indices[i]])
	}
}

package bcn

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// CompressedSize returns the number of bytes an image of width x height
// occupies once compressed to f, including any padding from partial
// trailing blocks.
func CompressedSize(f Format, width, height int) int {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	return blocksWide * blocksHigh * f.BlockSize()
}

// CompressBlockMasked encodes one 4x4 texel tile to f's wire format, using
// mask to mark which of the 16 texels are real image data (bit i set means
// texel i is valid; the rest are padding and don't influence the fit).
// dst must have at least f.BlockSize() bytes.
func CompressBlockMasked(f Format, texels [16]ColorRGBA, mask uint16, params Params, dst []byte) {
	switch f {
	case FormatBC1:
		compressColour(texels, mask, true, params, dst[:8])
	case FormatBC2:
		compressColour(texels, mask, false, params, dst[8:16])
		encodeAlphaBC2(texels, mask, dst[0:8])
	case FormatBC3:
		compressColour(texels, mask, false, params, dst[8:16])
		encodeAlphaChannel(texels, 3, mask, dst[0:8])
	case FormatBC4:
		encodeAlphaChannel(texels, 0, mask, dst[0:8])
	case FormatBC5:
		encodeAlphaChannel(texels, 0, mask, dst[0:8])
		encodeAlphaChannel(texels, 1, mask, dst[8:16])
	default:
		panic(fmt.Sprintf("bcn: unknown format %d", int(f)))
	}
}

// CompressBlock encodes a fully-valid 4x4 tile; equivalent to
// CompressBlockMasked with every texel marked valid.
func CompressBlock(f Format, texels [16]ColorRGBA, params Params, dst []byte) {
	CompressBlockMasked(f, texels, 0xFFFF, params, dst)
}

func compressColour(texels [16]ColorRGBA, mask uint16, bc1 bool, params Params, dst []byte) {
	ps := newPointSet(texels, mask, bc1, params.WeighColourByAlpha)

	threeColour := bc1 && ps.transparent

	if ps.count() == 0 {
		writeFour(vec3{}, vec3{}, [16]uint8{}, dst)
		return
	}
	if ps.count() == 1 {
		start, end, indices := fitSingleColour(ps, threeColour)
		writeEndpoints(start, end, indices, threeColour, ps.remap, dst)
		return
	}

	var start, end vec3
	var indices [16]uint8
	switch params.Algorithm {
	case RangeFit:
		start, end, indices = fitRange(ps, params.Weights, threeColour)
	case ClusterFit:
		start, end, indices = fitCluster(ps, params.Weights, threeColour, false)
	case IterativeClusterFit:
		start, end, indices = fitCluster(ps, params.Weights, threeColour, true)
	default:
		start, end, indices = fitCluster(ps, params.Weights, threeColour, false)
	}

	writeEndpoints(start, end, indices, threeColour, ps.remap, dst)
}

// writeEndpoints serialises the fit in the chosen palette mode. Texels with
// no point in the set (masked out, or BC1-transparent) are stored with
// index 3 whichever way the endpoints ended up ordered.
func writeEndpoints(start, end vec3, indices [16]uint8, threeColour bool, remap [16]int8, dst []byte) {
	if threeColour {
		writeThree(start, end, indices, dst)
	} else {
		writeFour(start, end, indices, dst)
	}
	for i, r := range remap {
		if r < 0 {
			dst[4+i/4] |= 3 << (2 * uint(i%4))
		}
	}
}

// DecompressBlock decodes one compressed block of format f into a 4x4
// RGBA tile. Decoding is always well-defined: every bit pattern maps to
// some tile, there is no invalid input.
func DecompressBlock(f Format, data []byte) [16]ColorRGBA {
	switch f {
	case FormatBC1:
		return decompressColour(data, true)
	case FormatBC2:
		tile := decompressColour(data[8:16], false)
		decodeAlphaBC2(&tile, data[0:8])
		return tile
	case FormatBC3:
		tile := decompressColour(data[8:16], false)
		decodeAlphaChannel(&tile, 3, data[0:8])
		return tile
	case FormatBC4:
		var tile [16]ColorRGBA
		for i := range tile {
			tile[i] = ColorRGBA{A: 255}
		}
		decodeAlphaChannel(&tile, 0, data[0:8])
		for i := range tile {
			tile[i].G = tile[i].R
			tile[i].B = tile[i].R
		}
		return tile
	case FormatBC5:
		var tile [16]ColorRGBA
		decodeAlphaChannel(&tile, 0, data[0:8])
		decodeAlphaChannel(&tile, 1, data[8:16])
		for i := range tile {
			tile[i].B = 0
			tile[i].A = 255
		}
		return tile
	default:
		panic(fmt.Sprintf("bcn: unknown format %d", int(f)))
	}
}

// Compress encodes a full width x height RGBA image to format f, tiling
// 4x4 blocks left to right, top to bottom, row-major. Partial edge blocks
// leave out-of-bounds texels at their zero value and exclude them from the
// fit via the block mask, so they never influence the chosen endpoints.
func Compress(f Format, width, height int, rgba []ColorRGBA, params Params) []byte {
	out := make([]byte, CompressedSize(f, width, height))
	blockSize := f.BlockSize()
	blocksWide := (width + 3) / 4

	forEachBlock(width, height, func(bx, by int) {
		texels, mask := gatherBlock(width, height, rgba, bx, by)
		blockIdx := by*blocksWide + bx
		CompressBlockMasked(f, texels, mask, params, out[blockIdx*blockSize:(blockIdx+1)*blockSize])
	})

	return out
}

// Decompress decodes a compressed image back to a width x height RGBA
// buffer. Any padding texels in partial edge blocks are decoded but
// discarded since they lie outside width/height.
func Decompress(f Format, width, height int, data []byte) []ColorRGBA {
	out := make([]ColorRGBA, width*height)
	blockSize := f.BlockSize()
	blocksWide := (width + 3) / 4

	forEachBlock(width, height, func(bx, by int) {
		blockIdx := by*blocksWide + bx
		tile := DecompressBlock(f, data[blockIdx*blockSize:(blockIdx+1)*blockSize])
		scatterBlock(width, height, out, bx, by, tile)
	})

	return out
}

func forEachBlock(width, height int, fn func(bx, by int)) {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	for by := 0; by < blocksHigh; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			fn(bx, by)
		}
	}
}

func gatherBlock(width, height int, rgba []ColorRGBA, bx, by int) (texels [16]ColorRGBA, mask uint16) {
	for ty := 0; ty < 4; ty++ {
		for tx := 0; tx < 4; tx++ {
			x, y := bx*4+tx, by*4+ty
			i := ty*4 + tx
			if x < width && y < height {
				texels[i] = rgba[y*width+x]
				mask |= 1 << uint(i)
			}
		}
	}
	return texels, mask
}

func scatterBlock(width, height int, out []ColorRGBA, bx, by int, tile [16]ColorRGBA) {
	for ty := 0; ty < 4; ty++ {
		for tx := 0; tx < 4; tx++ {
			x, y := bx*4+tx, by*4+ty
			if x < width && y < height {
				out[y*width+x] = tile[ty*4+tx]
			}
		}
	}
}

// CompressParallel is Compress split across GOMAXPROCS worker goroutines,
// each claiming block indices from a shared atomic counter. The core
// codec is stateless per block, so results are identical to Compress;
// this only changes wall-clock time. Images with fewer than 32 blocks run
// sequentially, since the goroutine overhead outweighs the work.
func CompressParallel(f Format, width, height int, rgba []ColorRGBA, params Params) []byte {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	totalBlocks := blocksWide * blocksHigh

	procs := runtime.GOMAXPROCS(0)
	if procs <= 1 || totalBlocks < 32 {
		return Compress(f, width, height, rgba, params)
	}

	out := make([]byte, CompressedSize(f, width, height))
	blockSize := f.BlockSize()

	var next uint32
	var wg sync.WaitGroup
	wg.Add(procs)
	for p := 0; p < procs; p++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(atomic.AddUint32(&next, 1)) - 1
				if idx >= totalBlocks {
					return
				}
				bx, by := idx%blocksWide, idx/blocksWide
				texels, mask := gatherBlock(width, height, rgba, bx, by)
				CompressBlockMasked(f, texels, mask, params, out[idx*blockSize:(idx+1)*blockSize])
			}
		}()
	}
	wg.Wait()

	return out
}

// DecompressParallel is Decompress's concurrent counterpart, with the
// same sequential fallback for small images.
func DecompressParallel(f Format, width, height int, data []byte) []ColorRGBA {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	totalBlocks := blocksWide * blocksHigh

	procs := runtime.GOMAXPROCS(0)
	if procs <= 1 || totalBlocks < 32 {
		return Decompress(f, width, height, data)
	}

	out := make([]ColorRGBA, width*height)
	blockSize := f.BlockSize()

	var next uint32
	var wg sync.WaitGroup
	wg.Add(procs)
	for p := 0; p < procs; p++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(atomic.AddUint32(&next, 1)) - 1
				if idx >= totalBlocks {
					return
				}
				bx, by := idx%blocksWide, idx/blocksWide
				tile := DecompressBlock(f, data[idx*blockSize:(idx+1)*blockSize])
				scatterBlock(width, height, out, bx, by, tile)
			}
		}()
	}
	wg.Wait()

	return out
}

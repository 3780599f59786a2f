package tpc

import "math/bits"

// The 0x0C BGRA encoding stores power-of-two levels in Morton (Z-order)
// layout: the linear offset of a pixel is its x and y coordinates with their
// bits interleaved, x bit first, from the least significant bit upward until
// each axis' log2 extent is exhausted.

// mortonOffset returns the swizzled pixel offset of linear position (x, y)
// in a w by h buffer. Both dimensions must be powers of two.
func mortonOffset(x, y, w, h uint32) uint32 {
	wBits := intLog2(w)
	hBits := intLog2(h)

	var offset, shift uint32
	for wBits > 0 || hBits > 0 {
		if wBits > 0 {
			offset |= (x & 1) << shift
			x >>= 1
			wBits--
			shift++
		}
		if hBits > 0 {
			offset |= (y & 1) << shift
			y >>= 1
			hBits--
			shift++
		}
	}
	return offset
}

// deSwizzle reorders a Morton-swizzled pixel buffer into row-major order,
// returning a new buffer. bpp is the byte size of one pixel.
func deSwizzle(data []byte, w, h, bpp int) []byte {
	out := make([]byte, len(data))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := int(mortonOffset(uint32(x), uint32(y), uint32(w), uint32(h))) * bpp
			dst := (y*w + x) * bpp
			copy(out[dst:dst+bpp], data[src:src+bpp])
		}
	}
	return out
}

// swizzle is the inverse of deSwizzle: it reorders a row-major pixel buffer
// into Morton order, returning a new buffer.
func swizzle(data []byte, w, h, bpp int) []byte {
	out := make([]byte, len(data))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := (y*w + x) * bpp
			dst := int(mortonOffset(uint32(x), uint32(y), uint32(w), uint32(h))) * bpp
			copy(out[dst:dst+bpp], data[src:src+bpp])
		}
	}
	return out
}

// intLog2 returns the position of the highest set bit, or 0 for 0.
func intLog2(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return uint32(bits.Len32(n) - 1)
}

// isPowerOf2 reports whether n is an integer power of two. Returns false for
// zero.
func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

package tpc

import (
	"bytes"
	"testing"
)

func TestMortonOffset(t *testing.T) {
	tests := []struct {
		x, y, w, h uint32
		expected   uint32
	}{
		// 2x2: interleaving degenerates to row-major order.
		{0, 0, 2, 2, 0},
		{1, 0, 2, 2, 1},
		{0, 1, 2, 2, 2},
		{1, 1, 2, 2, 3},
		// 4x4 Z-order: x bit first, then y, from the LSB up.
		{3, 0, 4, 4, 5},
		{0, 3, 4, 4, 10},
		{3, 3, 4, 4, 15},
		{2, 1, 4, 4, 6},
		// Non-square: extra x bits follow once y's extent is exhausted.
		{3, 1, 4, 2, 7},
		{2, 0, 4, 2, 4},
	}

	for _, tt := range tests {
		got := mortonOffset(tt.x, tt.y, tt.w, tt.h)
		if got != tt.expected {
			t.Errorf("mortonOffset(%d, %d, %dx%d): expected %d, got %d",
				tt.x, tt.y, tt.w, tt.h, tt.expected, got)
		}
	}
}

func TestSwizzleRoundTrip(t *testing.T) {
	const w, h, bpp = 8, 8, 4

	original := make([]byte, w*h*bpp)
	for i := range original {
		original[i] = byte(i*31 + 7)
	}

	swizzled := swizzle(original, w, h, bpp)
	if bytes.Equal(swizzled, original) {
		t.Fatal("swizzle of an 8x8 buffer should reorder pixels")
	}

	restored := deSwizzle(swizzled, w, h, bpp)
	if !bytes.Equal(restored, original) {
		t.Error("deSwizzle(swizzle(buf)) should restore the original buffer")
	}
}

func TestDeSwizzlePixelPlacement(t *testing.T) {
	const w, h, bpp = 4, 4, 4

	// Tag every swizzled pixel with its Morton offset, then verify the
	// de-swizzled buffer is in row-major order.
	swizzled := make([]byte, w*h*bpp)
	for i := 0; i < w*h; i++ {
		swizzled[i*bpp] = byte(i)
	}

	out := deSwizzle(swizzled, w, h, bpp)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := byte(mortonOffset(uint32(x), uint32(y), w, h))
			got := out[(y*w+x)*bpp]
			if got != want {
				t.Errorf("pixel (%d,%d): expected source %d, got %d", x, y, want, got)
			}
		}
	}
}

func TestIsPowerOf2(t *testing.T) {
	for _, n := range []int{1, 2, 4, 64, 4096} {
		if !isPowerOf2(n) {
			t.Errorf("%d should be a power of two", n)
		}
	}
	for _, n := range []int{0, 3, 6, 100, -4} {
		if isPowerOf2(n) {
			t.Errorf("%d should not be a power of two", n)
		}
	}
}

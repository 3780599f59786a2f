package tpc

import (
	"encoding/binary"
	"errors"
	"testing"
)

// dxt1Block packs one 8-byte DXT1 color block.
func dxt1Block(c0, c1 uint16, indices uint32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint16(b[0:], c0)
	binary.LittleEndian.PutUint16(b[2:], c1)
	binary.LittleEndian.PutUint32(b[4:], indices)
	return b
}

// dxt5Block packs one 16-byte DXT5 block. alphaIndices holds one 3-bit
// palette index per pixel, row-major.
func dxt5Block(a0, a1 uint8, alphaIndices [16]uint8, c0, c1 uint16, indices uint32) []byte {
	b := make([]byte, 16)
	b[0], b[1] = a0, a1

	var bits uint64
	for p, idx := range alphaIndices {
		bits |= uint64(idx&0x07) << uint(3*p)
	}
	for i := 0; i < 6; i++ {
		b[2+i] = byte(bits >> (8 * i))
	}

	binary.LittleEndian.PutUint16(b[8:], c0)
	binary.LittleEndian.PutUint16(b[10:], c1)
	binary.LittleEndian.PutUint32(b[12:], indices)
	return b
}

func pixelAt(data []byte, w, x, y int) [4]uint8 {
	i := (y*w + x) * 4
	return [4]uint8{data[i], data[i+1], data[i+2], data[i+3]}
}

func TestDecodeDXT1(t *testing.T) {
	t.Run("SolidEndpointColor", func(t *testing.T) {
		// c0 bytes 0xE0 0xF8, c1 bytes 0x1F 0x00, all indices 0: every
		// pixel is endpoint 0 expanded by left shift.
		block := dxt1Block(0xF8E0, 0x001F, 0x00000000)

		out, err := decodeDXT1(4, 4, block)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		want := [4]uint8{0xF8, 0x1C, 0x00, 255}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if got := pixelAt(out, 4, x, y); got != want {
					t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
				}
			}
		}
	})

	t.Run("FourColorInterpolation", func(t *testing.T) {
		// c0 > c1: thirds interpolation, everything opaque.
		out, err := decodeDXT1(4, 4, dxt1Block(0xF8E0, 0x001F, 0xAAAAAAAA)) // all indices 2
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		// c0 expands to (F8,1C,00), c1 to (00,00,F8).
		want := [4]uint8{uint8((2*0xF8 + 0) / 3), uint8((2*0x1C + 0) / 3), uint8(0xF8 / 3), 255}
		if got := pixelAt(out, 4, 0, 0); got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("ThreeColorTransparent", func(t *testing.T) {
		// c0 <= c1: midpoint third entry, index 3 is transparent black.
		out, err := decodeDXT1(4, 4, dxt1Block(0x001F, 0xF8E0, 0xFFFFFFFF)) // all indices 3
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got := pixelAt(out, 4, 2, 2); got != [4]uint8{0, 0, 0, 0} {
			t.Errorf("expected transparent black, got %v", got)
		}
	})

	t.Run("ThreeColorMidpoint", func(t *testing.T) {
		out, err := decodeDXT1(4, 4, dxt1Block(0x001F, 0xF8E0, 0xAAAAAAAA)) // all indices 2
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := [4]uint8{0xF8 / 2, 0x1C / 2, 0xF8 / 2, 255}
		if got := pixelAt(out, 4, 0, 0); got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("EdgeTile", func(t *testing.T) {
		// A 2x2 image still consumes one full block but writes only four
		// pixels.
		out, err := decodeDXT1(2, 2, dxt1Block(0xF8E0, 0x001F, 0x00000000))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out) != 2*2*4 {
			t.Errorf("expected 16 output bytes, got %d", len(out))
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		if _, err := decodeDXT1(8, 8, make([]byte, 8)); !errors.Is(err, ErrTruncatedStream) {
			t.Errorf("expected ErrTruncatedStream, got %v", err)
		}
	})
}

func TestDecodeDXT5(t *testing.T) {
	t.Run("AlphaRampSixStep", func(t *testing.T) {
		// a0 <= a1: six-step ramp with pinned 0 and 255 at indices 6 and 7.
		var indices [16]uint8
		indices[0] = 6
		indices[1] = 7
		indices[2] = 0
		indices[3] = 1

		block := dxt5Block(0, 255, indices, 0xF8E0, 0x001F, 0x00000000)
		out, err := decodeDXT5(4, 4, block)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		if a := pixelAt(out, 4, 0, 0)[3]; a != 0 {
			t.Errorf("alpha index 6: expected 0, got %d", a)
		}
		if a := pixelAt(out, 4, 1, 0)[3]; a != 255 {
			t.Errorf("alpha index 7: expected 255, got %d", a)
		}
		if a := pixelAt(out, 4, 2, 0)[3]; a != 0 {
			t.Errorf("alpha index 0: expected a0=0, got %d", a)
		}
		if a := pixelAt(out, 4, 3, 0)[3]; a != 255 {
			t.Errorf("alpha index 1: expected a1=255, got %d", a)
		}
	})

	t.Run("AlphaRampEightStep", func(t *testing.T) {
		// a0 > a1: full eight-step interpolation.
		var indices [16]uint8
		for i := range indices {
			indices[i] = 2
		}

		block := dxt5Block(255, 0, indices, 0xF8E0, 0x001F, 0x00000000)
		out, err := decodeDXT5(4, 4, block)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		want := uint8((6*255 + 0) / 7)
		if a := pixelAt(out, 4, 0, 0)[3]; a != want {
			t.Errorf("alpha index 2: expected %d, got %d", want, a)
		}
	})

	t.Run("ColorAlwaysFourEntry", func(t *testing.T) {
		// The color half uses the opaque four-color rule even when
		// c0 <= c1; only the alpha block decides transparency.
		var indices [16]uint8
		block := dxt5Block(255, 255, indices, 0x001F, 0xF8E0, 0xFFFFFFFF) // color index 3

		out, err := decodeDXT5(4, 4, block)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		want := [4]uint8{uint8((0 + 2*0xF8) / 3), uint8((0 + 2*0x1C) / 3), uint8((0xF8 + 0) / 3), 255}
		if got := pixelAt(out, 4, 0, 0); got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		if _, err := decodeDXT5(4, 4, make([]byte, 15)); !errors.Is(err, ErrTruncatedStream) {
			t.Errorf("expected ErrTruncatedStream, got %v", err)
		}
	})
}

func TestRGB565Expansion(t *testing.T) {
	// Expansion is a pure left shift, no low-bit replication.
	r, g, b := rgb565(0xFFFF)
	if r != 0xF8 || g != 0xFC || b != 0xF8 {
		t.Errorf("0xFFFF: expected (F8,FC,F8), got (%02X,%02X,%02X)", r, g, b)
	}
	r, g, b = rgb565(0xF8E0)
	if r != 0xF8 || g != 0x1C || b != 0x00 {
		t.Errorf("0xF8E0: expected (F8,1C,00), got (%02X,%02X,%02X)", r, g, b)
	}
}

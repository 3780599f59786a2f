package tpc

import (
	"bytes"
	"errors"
	"testing"
)

func squareMipmap(n int, fill byte) Mipmap {
	data := make([]byte, n*n*3)
	for i := range data {
		data[i] = fill
	}
	return Mipmap{Width: n, Height: n, Format: FormatRGB, Data: data}
}

func TestRotate90(t *testing.T) {
	t.Run("FourTimesIsIdentity", func(t *testing.T) {
		const n, bpp = 5, 4
		original := make([]byte, n*n*bpp)
		for i := range original {
			original[i] = byte(i * 13)
		}

		data := make([]byte, len(original))
		copy(data, original)

		if err := rotate90(data, n, n, bpp, 4); err != nil {
			t.Fatalf("rotate: %v", err)
		}
		if !bytes.Equal(data, original) {
			t.Error("four clockwise rotations should restore the original buffer")
		}
	})

	t.Run("OnceClockwise", func(t *testing.T) {
		// [a b]      [c a]
		// [c d]  ->  [d b]
		data := []byte{'a', 'b', 'c', 'd'}
		if err := rotate90(data, 2, 2, 1, 1); err != nil {
			t.Fatalf("rotate: %v", err)
		}
		if want := []byte{'c', 'a', 'd', 'b'}; !bytes.Equal(data, want) {
			t.Errorf("expected %q, got %q", want, data)
		}
	})

	t.Run("OddSide", func(t *testing.T) {
		// Center pixel of an odd-sided buffer never moves.
		data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
		if err := rotate90(data, 3, 3, 1, 1); err != nil {
			t.Fatalf("rotate: %v", err)
		}
		if data[4] != 5 {
			t.Errorf("center pixel moved: got %d", data[4])
		}
		if want := []byte{7, 4, 1, 8, 5, 2, 9, 6, 3}; !bytes.Equal(data, want) {
			t.Errorf("expected %v, got %v", want, data)
		}
	})

	t.Run("NonSquare", func(t *testing.T) {
		if err := rotate90(make([]byte, 8), 4, 2, 1, 1); err == nil {
			t.Error("expected error for non-square buffer")
		}
	})

	t.Run("ZeroTimesNeverFails", func(t *testing.T) {
		if err := rotate90(make([]byte, 8), 4, 2, 1, 0); err != nil {
			t.Errorf("zero rotations should not validate shape: %v", err)
		}
	})
}

func TestFixupCubeMap(t *testing.T) {
	t.Run("SwapsFirstTwoFaces", func(t *testing.T) {
		layers := make([]Layer, 6)
		for i := range layers {
			// Constant-fill faces are rotation invariant, which isolates
			// the face swap.
			layers[i] = Layer{Mipmaps: []Mipmap{squareMipmap(4, byte(0x10 * i))}}
		}

		if err := fixupCubeMap(layers); err != nil {
			t.Fatalf("fixup: %v", err)
		}

		if layers[0].Mipmaps[0].Data[0] != 0x10 {
			t.Errorf("face 0 should hold pre-fixup face 1 data, got fill 0x%02x", layers[0].Mipmaps[0].Data[0])
		}
		if layers[1].Mipmaps[0].Data[0] != 0x00 {
			t.Errorf("face 1 should hold pre-fixup face 0 data, got fill 0x%02x", layers[1].Mipmaps[0].Data[0])
		}
		for i := 2; i < 6; i++ {
			if layers[i].Mipmaps[0].Data[0] != byte(0x10*i) {
				t.Errorf("face %d data changed unexpectedly", i)
			}
		}
	})

	t.Run("UndoRestoresOriginal", func(t *testing.T) {
		layers := make([]Layer, 6)
		originals := make([][]byte, 6)
		for i := range layers {
			data := make([]byte, 4*4*3)
			for j := range data {
				data[j] = byte(i*64 + j)
			}
			originals[i] = append([]byte(nil), data...)
			layers[i] = Layer{Mipmaps: []Mipmap{{Width: 4, Height: 4, Format: FormatRGB, Data: data}}}
		}

		if err := fixupCubeMap(layers); err != nil {
			t.Fatalf("fixup: %v", err)
		}
		if err := undoCubeMapFixup(layers); err != nil {
			t.Fatalf("undo: %v", err)
		}

		for i := range layers {
			if !bytes.Equal(layers[i].Mipmaps[0].Data, originals[i]) {
				t.Errorf("face %d not restored", i)
			}
		}
	})

	t.Run("NotIdempotent", func(t *testing.T) {
		// The face swap is not idempotent: running the fixup twice must
		// differ from running it once, so decode applies it exactly once.
		layers := make([]Layer, 6)
		for i := range layers {
			layers[i] = Layer{Mipmaps: []Mipmap{squareMipmap(4, byte(i + 1))}}
		}

		if err := fixupCubeMap(layers); err != nil {
			t.Fatalf("fixup: %v", err)
		}
		once := layers[0].Mipmaps[0].Data[0]

		if err := fixupCubeMap(layers); err != nil {
			t.Fatalf("second fixup: %v", err)
		}
		if layers[0].Mipmaps[0].Data[0] == once {
			t.Error("double fixup should be observably different from a single run")
		}
	})

	t.Run("FaceDimensionMismatch", func(t *testing.T) {
		layers := make([]Layer, 6)
		for i := range layers {
			layers[i] = Layer{Mipmaps: []Mipmap{squareMipmap(4, 0)}}
		}
		layers[3].Mipmaps[0] = squareMipmap(8, 0)

		if err := fixupCubeMap(layers); !errors.Is(err, ErrCubeFaceMismatch) {
			t.Errorf("expected ErrCubeFaceMismatch, got %v", err)
		}
	})

	t.Run("WrongLayerCount", func(t *testing.T) {
		layers := []Layer{{Mipmaps: []Mipmap{squareMipmap(4, 0)}}}
		if err := fixupCubeMap(layers); !errors.Is(err, ErrLayerCountMismatch) {
			t.Errorf("expected ErrLayerCountMismatch, got %v", err)
		}
	})
}

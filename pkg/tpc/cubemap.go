package tpc

import "fmt"

// cubeFaceRotations is the number of 90° clockwise turns applied to each
// face after decoding, indexed by face number. Together with the face 0/1
// swap below it undoes how the original toolchain packed cube faces; the
// exact table is required for bit-exact compatibility.
var cubeFaceRotations = [6]int{3, 1, 0, 2, 2, 0}

// fixupCubeMap validates, rotates and reorders the six faces of a decoded
// cube map in place. All faces must already be decompressed to raw pixels.
// Running it twice is not a no-op (the face swap is not idempotent), so it
// runs exactly once per decode.
func fixupCubeMap(layers []Layer) error {
	if len(layers) != 6 {
		return fmt.Errorf("%w: cube map has %d layers, want 6", ErrLayerCountMismatch, len(layers))
	}

	mipCount := len(layers[0].Mipmaps)
	for face := 1; face < 6; face++ {
		if len(layers[face].Mipmaps) != mipCount {
			return fmt.Errorf("%w: face %d has %d mip levels, face 0 has %d",
				ErrCubeFaceMismatch, face, len(layers[face].Mipmaps), mipCount)
		}
	}

	for j := 0; j < mipCount; j++ {
		ref := layers[0].Mipmaps[j]
		for face := 1; face < 6; face++ {
			m := layers[face].Mipmaps[j]
			if m.Width != ref.Width || m.Height != ref.Height || len(m.Data) != len(ref.Data) {
				return fmt.Errorf("%w: face %d mip %d is %dx%d (%d bytes), face 0 is %dx%d (%d bytes)",
					ErrCubeFaceMismatch, face, j, m.Width, m.Height, len(m.Data),
					ref.Width, ref.Height, len(ref.Data))
			}
		}
	}

	for face := 0; face < 6; face++ {
		for j := 0; j < mipCount; j++ {
			m := &layers[face].Mipmaps[j]
			if err := rotate90(m.Data, m.Width, m.Height, m.Format.BytesPerPixel(), cubeFaceRotations[face]); err != nil {
				return err
			}
		}
	}

	// The first two faces trade places.
	for j := 0; j < mipCount; j++ {
		layers[0].Mipmaps[j].Data, layers[1].Mipmaps[j].Data =
			layers[1].Mipmaps[j].Data, layers[0].Mipmaps[j].Data
	}

	return nil
}

// undoCubeMapFixup applies the exact inverse of fixupCubeMap so the encoder
// can re-emit the container's original face order and orientation.
func undoCubeMapFixup(layers []Layer) error {
	if len(layers) != 6 {
		return fmt.Errorf("%w: cube map has %d layers, want 6", ErrLayerCountMismatch, len(layers))
	}

	mipCount := len(layers[0].Mipmaps)
	for j := 0; j < mipCount; j++ {
		layers[0].Mipmaps[j].Data, layers[1].Mipmaps[j].Data =
			layers[1].Mipmaps[j].Data, layers[0].Mipmaps[j].Data
	}

	for face := 0; face < 6; face++ {
		for j := 0; j < len(layers[face].Mipmaps); j++ {
			m := &layers[face].Mipmaps[j]
			times := (4 - cubeFaceRotations[face]) % 4
			if err := rotate90(m.Data, m.Width, m.Height, m.Format.BytesPerPixel(), times); err != nil {
				return err
			}
		}
	}

	return nil
}

// rotate90 rotates a square pixel buffer 90° clockwise the given number of
// times, in place, via a four-way cyclic pixel swap per pass. bpp is the
// byte size of one pixel.
func rotate90(data []byte, width, height, bpp, times int) error {
	if times%4 == 0 {
		return nil
	}
	if width != height {
		return fmt.Errorf("tpc: cannot rotate non-square %dx%d buffer", width, height)
	}
	if bpp < 1 {
		return fmt.Errorf("tpc: cannot rotate buffer with %d bytes per pixel", bpp)
	}

	n := width
	w, h := n/2, (n+1)/2

	for c := 0; c < times; c++ {
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				d0 := (y*n + x) * bpp
				d1 := ((n-1-x)*n + y) * bpp
				d2 := ((n-1-y)*n + (n - 1 - x)) * bpp
				d3 := (x*n + (n - 1 - y)) * bpp

				for p := 0; p < bpp; p++ {
					tmp := data[d0+p]
					data[d0+p] = data[d1+p]
					data[d1+p] = data[d2+p]
					data[d2+p] = data[d3+p]
					data[d3+p] = tmp
				}
			}
		}
	}

	return nil
}

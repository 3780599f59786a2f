package tpc

import "fmt"

// Encode re-serializes a raw-format texture into the container layout:
// header, mip chain in per-layer/per-level order, then the TXI metadata text
// if non-empty. Cube faces are written back in the container's packed order
// and orientation, and swizzled BGRA levels are re-swizzled, so Decode and
// Encode round-trip. Re-emitting a still-compressed texture is not
// supported.
func Encode(t *Texture) ([]byte, error) {
	if t.LayerCount() == 0 || len(t.Layers[0].Mipmaps) == 0 {
		return nil, fmt.Errorf("tpc: cannot encode empty texture")
	}

	format := t.Format()
	if format.Compressed() {
		return nil, fmt.Errorf("tpc: cannot encode block-compressed texture, convert first")
	}
	encoding, _, err := format.ContainerEncoding()
	if err != nil {
		return nil, err
	}

	mipCount := len(t.Layers[0].Mipmaps)
	level0 := t.Layers[0].Mipmaps[0]

	width, height := level0.Width, level0.Height
	switch {
	case t.IsCubeMap():
		height *= 6
	case t.Animated:
		width *= t.FramesX
		height *= t.FramesY
	}
	if width >= MaxDimension || height >= MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionOutOfRange, width, height)
	}

	layers := t.Layers
	if t.IsCubeMap() {
		layers = cloneLayers(t.Layers)
		if err := undoCubeMapFixup(layers); err != nil {
			return nil, err
		}
	}

	header := &Header{
		DataSize: 0, // raw chains carry a zero placeholder
		Width:    uint16(width),
		Height:   uint16(height),
		Encoding: encoding,
		MipCount: uint8(mipCount),
	}

	size := HeaderSize
	for _, layer := range layers {
		for _, m := range layer.Mipmaps {
			size += len(m.Data)
		}
	}
	size += len(t.TXI)

	out := make([]byte, HeaderSize, size)
	header.EncodeTo(out)

	for li, layer := range layers {
		if len(layer.Mipmaps) != mipCount {
			return nil, fmt.Errorf("%w: layer %d has %d mip levels, layer 0 has %d",
				ErrLayerCountMismatch, li, len(layer.Mipmaps), mipCount)
		}
		for _, m := range layer.Mipmaps {
			data := m.Data
			if m.Format == FormatBGRA && isPowerOf2(m.Width) {
				data = swizzle(data, m.Width, m.Height, m.Format.BytesPerPixel())
			}
			out = append(out, data...)
		}
	}

	out = append(out, t.TXI...)
	return out, nil
}

// cloneLayers deep-copies layer pixel data so in-place geometry passes never
// touch the source texture.
func cloneLayers(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for li, layer := range layers {
		mips := make([]Mipmap, len(layer.Mipmaps))
		for mi, m := range layer.Mipmaps {
			data := make([]byte, len(m.Data))
			copy(data, m.Data)
			mips[mi] = Mipmap{Width: m.Width, Height: m.Height, Format: m.Format, Data: data}
		}
		out[li] = Layer{Mipmaps: mips}
	}
	return out
}

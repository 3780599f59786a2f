// Package tpc decodes and encodes the TPC texture container used by the
// Odyssey engine games.
//
// A container is a fixed 128-byte header followed by a chain of mipmaps and
// an optional trailing ASCII TXI metadata blob. The mip chain holds one layer
// for a plain texture, six face layers for a cube map, or numx*numy frame
// layers for an animated flip-book; the pixel data may be raw (greyscale,
// RGB, RGBA, Morton-swizzled BGRA) or DXT1/DXT5 block compressed.
//
// Decode normalizes everything to uniformly addressable row-major mipmaps:
// compressed levels are expanded to RGBA, greyscale levels to RGB, swizzled
// levels to linear order, and cube faces are rotated and reordered the way
// the original toolchain packed them. Encode re-emits the same layout for
// raw-format textures.
package tpc

import "fmt"

// Mipmap is one level of a mip chain: a row-major pixel buffer of exactly
// Format.Size(Width, Height) bytes.
type Mipmap struct {
	Width  int
	Height int
	Format PixelFormat
	Data   []byte
}

// Layer is one full mip chain, largest level first. A cube map has six
// layers (faces), a flip-book has numx*numy layers (frames), a plain texture
// has one.
type Layer struct {
	Mipmaps []Mipmap
}

// CubeSource records how the cube-map decision was made.
type CubeSource uint8

const (
	// CubeExplicit means the metadata carried a cube directive.
	CubeExplicit CubeSource = iota
	// CubeHeuristic means the decision fell back to the height == 6*width
	// shape check.
	CubeHeuristic
)

// CubeDecision is the tagged cube-map determination: callers can distinguish
// a confident directive from a shape-based guess.
type CubeDecision struct {
	Cube   bool
	Source CubeSource
}

// Texture is the decoded result of one container. It is immutable from the
// codec's point of view: conversions return new Texture values.
type Texture struct {
	Layers []Layer

	Cube     CubeDecision
	Animated bool

	// Flip-book grid geometry, valid when Animated.
	FramesX int
	FramesY int
	FPS     float32

	// TXI is the trailing metadata text, trimmed.
	TXI string

	// AlphaTest is the alpha-test threshold from the TXI directives, 0 when
	// absent.
	AlphaTest float32
}

// LayerCount returns the number of layers (faces or frames).
func (t *Texture) LayerCount() int {
	return len(t.Layers)
}

// Format returns the current pixel format of the texture: the format of the
// largest mip level. Per-mipmap formats are the source of truth; mixed-format
// chains report the level-0 format.
func (t *Texture) Format() PixelFormat {
	if len(t.Layers) == 0 || len(t.Layers[0].Mipmaps) == 0 {
		return FormatInvalid
	}
	return t.Layers[0].Mipmaps[0].Format
}

// IsCubeMap reports whether the texture decoded as a six-face cube map.
func (t *Texture) IsCubeMap() bool {
	return t.Cube.Cube
}

// Frame returns the mip chain of animation frame i. Frames are laid out in
// row-major grid order.
func (t *Texture) Frame(i int) (Layer, error) {
	if !t.Animated {
		return Layer{}, fmt.Errorf("tpc: texture is not animated")
	}
	if i < 0 || i >= len(t.Layers) {
		return Layer{}, fmt.Errorf("tpc: frame %d out of range (have %d)", i, len(t.Layers))
	}
	return t.Layers[i], nil
}

// ToRGBA returns a new Texture with every mipmap converted to RGBA8. The
// receiver is left untouched. Compressed mipmaps are not convertible here;
// Decode already normalizes them.
func (t *Texture) ToRGBA() (*Texture, error) {
	out := *t
	out.Layers = make([]Layer, len(t.Layers))
	for li, layer := range t.Layers {
		mips := make([]Mipmap, len(layer.Mipmaps))
		for mi, m := range layer.Mipmaps {
			data, err := toRGBAPixels(m)
			if err != nil {
				return nil, err
			}
			mips[mi] = Mipmap{Width: m.Width, Height: m.Height, Format: FormatRGBA, Data: data}
		}
		out.Layers[li] = Layer{Mipmaps: mips}
	}
	return &out, nil
}

// toRGBAPixels converts one raw mipmap buffer to RGBA8.
func toRGBAPixels(m Mipmap) ([]byte, error) {
	n := m.Width * m.Height
	out := make([]byte, n*4)

	switch m.Format {
	case FormatGreyscale:
		for i := 0; i < n; i++ {
			v := m.Data[i]
			out[i*4+0] = v
			out[i*4+1] = v
			out[i*4+2] = v
			out[i*4+3] = 255
		}
	case FormatRGB:
		for i := 0; i < n; i++ {
			out[i*4+0] = m.Data[i*3+0]
			out[i*4+1] = m.Data[i*3+1]
			out[i*4+2] = m.Data[i*3+2]
			out[i*4+3] = 255
		}
	case FormatBGR:
		for i := 0; i < n; i++ {
			out[i*4+0] = m.Data[i*3+2]
			out[i*4+1] = m.Data[i*3+1]
			out[i*4+2] = m.Data[i*3+0]
			out[i*4+3] = 255
		}
	case FormatRGBA:
		copy(out, m.Data)
	case FormatBGRA:
		for i := 0; i < n; i++ {
			out[i*4+0] = m.Data[i*4+2]
			out[i*4+1] = m.Data[i*4+1]
			out[i*4+2] = m.Data[i*4+0]
			out[i*4+3] = m.Data[i*4+3]
		}
	default:
		return nil, fmt.Errorf("tpc: cannot convert %s mipmap to RGBA", m.Format)
	}

	return out, nil
}

// splitLayers distributes a flat, in-order mipmap list over layerCount
// layers of equal chain length.
func splitLayers(mips []Mipmap, layerCount int) ([]Layer, error) {
	if layerCount < 1 || len(mips)%layerCount != 0 {
		return nil, fmt.Errorf("%w: %d mipmaps across %d layers", ErrLayerCountMismatch, len(mips), layerCount)
	}

	perLayer := len(mips) / layerCount
	layers := make([]Layer, layerCount)
	for i := range layers {
		layers[i] = Layer{Mipmaps: mips[i*perLayer : (i+1)*perLayer : (i+1)*perLayer]}
	}
	return layers, nil
}

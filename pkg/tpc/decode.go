package tpc

import (
	"fmt"
	"strings"

	"github.com/odysseytools/tpcTools/pkg/txi"
)

// Decode parses, validates and decompresses one container into a normalized
// Texture. The input buffer is not retained; the result owns all of its
// pixel data.
func Decode(data []byte) (*Texture, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	format := header.Format()
	mipCount := header.MipLevels()

	// A zero DataSize marks an uncompressed chain; its true size is
	// recomputed with a provisional layer count of 1 to locate where pixel
	// data ends and the metadata blob begins.
	pixelSize := int(header.DataSize)
	if !header.Compressed() {
		pixelSize = ChainSize(format, int(header.Width), int(header.Height), mipCount)
	}

	metaStart := HeaderSize + pixelSize
	if metaStart > len(data) {
		metaStart = len(data)
	}
	text, err := metadataText(data[metaStart:])
	if err != nil {
		return nil, err
	}
	features := txi.Parse(text)

	geom := deriveLayout(int(header.Width), int(header.Height), features)

	if header.Compressed() && !geom.animated {
		want := ChainSize(format, geom.width, geom.height, mipCount) * geom.layerCount
		if int(header.DataSize) != want {
			return nil, fmt.Errorf("%w: header declares %d bytes, %s %dx%d x%d layers x%d mips needs %d",
				ErrSizeMismatch, header.DataSize, format, geom.width, geom.height, geom.layerCount, mipCount, want)
		}
	}

	pixelEnd := HeaderSize + pixelSize
	if pixelEnd > len(data) {
		pixelEnd = len(data)
	}
	mipmaps, err := readMipChain(data[HeaderSize:pixelEnd], format, geom, mipCount)
	if err != nil {
		return nil, err
	}

	if format.Compressed() {
		for i := range mipmaps {
			if err := decompressMipmap(&mipmaps[i]); err != nil {
				return nil, err
			}
		}
	}

	layers, err := splitLayers(mipmaps, geom.layerCount)
	if err != nil {
		return nil, err
	}

	if geom.cube.Cube {
		if err := fixupCubeMap(layers); err != nil {
			return nil, err
		}
	}

	return &Texture{
		Layers:    layers,
		Cube:      geom.cube,
		Animated:  geom.animated,
		FramesX:   geom.framesX,
		FramesY:   geom.framesY,
		FPS:       geom.fps,
		TXI:       text,
		AlphaTest: features.AlphaTest,
	}, nil
}

// layout is the effective chain geometry after metadata refinement.
type layout struct {
	layerCount    int
	width, height int
	cube          CubeDecision
	animated      bool
	framesX       int
	framesY       int
	fps           float32
}

// deriveLayout decides cube map vs. flip-book vs. plain from the metadata
// directives and the header dimensions, and derives the per-layer geometry.
// When an animated flip-book and a cube map would both match, the flip-book
// wins.
func deriveLayout(w, h int, f txi.Features) layout {
	geom := layout{layerCount: 1, width: w, height: h}

	switch {
	case f.CubeSet:
		geom.cube = CubeDecision{Cube: f.Cube, Source: CubeExplicit}
	case w > 0 && h == 6*w:
		// Shape fallback, only consulted without an explicit directive.
		geom.cube = CubeDecision{Cube: true, Source: CubeHeuristic}
	default:
		geom.cube = CubeDecision{Cube: false, Source: CubeHeuristic}
	}

	animated := strings.EqualFold(f.ProcedureType, "cycle") &&
		f.NumX > 0 && f.NumY > 0 && f.FPS > 0

	if animated {
		geom.cube.Cube = false
		geom.animated = true
		geom.framesX = f.NumX
		geom.framesY = f.NumY
		geom.fps = f.FPS
		geom.layerCount = f.NumX * f.NumY
		geom.width = w / f.NumX
		geom.height = h / f.NumY
		return geom
	}

	if geom.cube.Cube {
		geom.layerCount = 6
		geom.height = h / 6
	}

	return geom
}

// metadataText decodes the trailing metadata blob as ASCII and trims padding.
func metadataText(raw []byte) (string, error) {
	for i, b := range raw {
		if b > 0x7F {
			return "", fmt.Errorf("%w: byte 0x%02x at offset %d", ErrInvalidMetadataEncoding, b, i)
		}
	}
	return strings.Trim(string(raw), "\x00 \t\r\n"), nil
}

// readMipChain walks layerCount x mipCount levels of the pixel region,
// pulling the exact level size each time. Swizzled BGRA levels with a
// power-of-two width are de-swizzled and greyscale levels are unpacked to
// RGB as they are read; the per-mipmap format records the unpack.
func readMipChain(region []byte, format PixelFormat, geom layout, mipCount int) ([]Mipmap, error) {
	mipmaps := make([]Mipmap, 0, geom.layerCount*mipCount)
	offset := 0

	for layer := 0; layer < geom.layerCount; layer++ {
		w, h := geom.width, geom.height
		for level := 0; level < mipCount; level++ {
			size := format.Size(w, h)
			if offset+size > len(region) {
				return nil, fmt.Errorf("%w: layer %d mip %d needs %d bytes at offset %d, region has %d",
					ErrTruncatedStream, layer, level, size, offset, len(region))
			}

			data := make([]byte, size)
			copy(data, region[offset:offset+size])
			offset += size

			mip := Mipmap{Width: w, Height: h, Format: format, Data: data}
			switch {
			case format == FormatBGRA && isPowerOf2(w):
				mip.Data = deSwizzle(mip.Data, w, h, format.BytesPerPixel())
			case format == FormatGreyscale:
				mip.Data = expandGreyscale(mip.Data)
				mip.Format = FormatRGB
			}

			mipmaps = append(mipmaps, mip)
			w = nextMipDim(w)
			h = nextMipDim(h)
		}
	}

	if len(mipmaps)%geom.layerCount != 0 {
		return nil, fmt.Errorf("%w: %d mipmaps across %d layers",
			ErrLayerCountMismatch, len(mipmaps), geom.layerCount)
	}

	return mipmaps, nil
}

// expandGreyscale unpacks single-byte grey pixels into 3-channel grey RGB.
func expandGreyscale(data []byte) []byte {
	out := make([]byte, len(data)*3)
	for i, v := range data {
		out[i*3+0] = v
		out[i*3+1] = v
		out[i*3+2] = v
	}
	return out
}

// decompressMipmap expands a block-compressed mipmap to RGBA8 in place.
func decompressMipmap(m *Mipmap) error {
	var (
		data []byte
		err  error
	)

	switch m.Format {
	case FormatDXT1:
		data, err = decodeDXT1(m.Width, m.Height, m.Data)
	case FormatDXT5:
		data, err = decodeDXT5(m.Width, m.Height, m.Data)
	default:
		return fmt.Errorf("tpc: mipmap format %s is not compressed", m.Format)
	}
	if err != nil {
		return err
	}

	m.Data = data
	m.Format = FormatRGBA
	return nil
}

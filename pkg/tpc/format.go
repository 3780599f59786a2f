package tpc

import "fmt"

// Encoding selector values stored at offset 0x0C of the container header.
const (
	EncodingGreyscale = 0x01
	EncodingRGB       = 0x02
	EncodingRGBA      = 0x04
	EncodingBGRA      = 0x0C // Morton-swizzled BGRA
)

// PixelFormat identifies the layout of one mipmap's pixel data.
type PixelFormat uint8

const (
	FormatInvalid PixelFormat = iota
	FormatGreyscale
	FormatRGB
	FormatRGBA
	FormatBGR
	FormatBGRA // stored Morton-swizzled in the container
	FormatDXT1 // 4x4 blocks, 8 bytes/block, 1-bit-alpha palette
	FormatDXT5 // 4x4 blocks, 16 bytes/block, interpolated 8-level alpha
)

// ResolveFormat maps a raw encoding byte and the compressed flag to a pixel
// format. Combinations outside the container's format table resolve to
// FormatInvalid.
func ResolveFormat(encoding uint8, compressed bool) PixelFormat {
	switch {
	case encoding == EncodingGreyscale && !compressed:
		return FormatGreyscale
	case encoding == EncodingRGB && !compressed:
		return FormatRGB
	case encoding == EncodingRGB && compressed:
		return FormatDXT1
	case encoding == EncodingRGBA && !compressed:
		return FormatRGBA
	case encoding == EncodingRGBA && compressed:
		return FormatDXT5
	case encoding == EncodingBGRA && !compressed:
		return FormatBGRA
	default:
		return FormatInvalid
	}
}

// MinBlockBytes returns the smallest addressable unit of pixel data for an
// encoding: bytes per pixel for raw encodings, bytes per block for compressed
// ones.
func MinBlockBytes(encoding uint8, compressed bool) (int, error) {
	format := ResolveFormat(encoding, compressed)
	if format == FormatInvalid {
		return 0, fmt.Errorf("%w: 0x%02x (compressed=%t)", ErrUnknownEncoding, encoding, compressed)
	}
	if format.Compressed() {
		return format.BlockBytes(), nil
	}
	return format.BytesPerPixel(), nil
}

// Compressed reports whether the format stores pixels as 4x4 compressed
// blocks.
func (f PixelFormat) Compressed() bool {
	return f == FormatDXT1 || f == FormatDXT5
}

// BytesPerPixel returns the byte size of one pixel for raw formats, or 0 for
// compressed and invalid formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatGreyscale:
		return 1
	case FormatRGB, FormatBGR:
		return 3
	case FormatRGBA, FormatBGRA:
		return 4
	default:
		return 0
	}
}

// BlockBytes returns the byte size of one 4x4 block for compressed formats,
// or 0 for raw and invalid formats.
func (f PixelFormat) BlockBytes() int {
	switch f {
	case FormatDXT1:
		return 8
	case FormatDXT5:
		return 16
	default:
		return 0
	}
}

// Size returns the exact byte size of one mipmap level of the given
// dimensions. Compressed blocks always cover full 4x4 tiles, so partial tiles
// at the image edge count as whole blocks.
func (f PixelFormat) Size(w, h int) int {
	if f.Compressed() {
		return ((w + 3) / 4) * ((h + 3) / 4) * f.BlockBytes()
	}
	return w * h * f.BytesPerPixel()
}

// ChainSize returns the cumulative byte size of a full mip chain for one
// layer: mipCount successive halvings of w and h, each axis floored to a
// minimum of 1.
func ChainSize(f PixelFormat, w, h, mipCount int) int {
	size := 0
	for i := 0; i < mipCount; i++ {
		size += f.Size(w, h)
		w = nextMipDim(w)
		h = nextMipDim(h)
	}
	return size
}

// nextMipDim halves a mip dimension, flooring at 1.
func nextMipDim(d int) int {
	if d >>= 1; d < 1 {
		return 1
	}
	return d
}

// ContainerEncoding returns the encoding byte and compressed flag that
// represent the format in the container header. Formats the container cannot
// express (plain BGR, invalid) return ErrUnknownEncoding.
func (f PixelFormat) ContainerEncoding() (encoding uint8, compressed bool, err error) {
	switch f {
	case FormatGreyscale:
		return EncodingGreyscale, false, nil
	case FormatRGB:
		return EncodingRGB, false, nil
	case FormatRGBA:
		return EncodingRGBA, false, nil
	case FormatBGRA:
		return EncodingBGRA, false, nil
	case FormatDXT1:
		return EncodingRGB, true, nil
	case FormatDXT5:
		return EncodingRGBA, true, nil
	default:
		return 0, false, fmt.Errorf("%w: no container encoding for %s", ErrUnknownEncoding, f)
	}
}

// String returns a human-readable format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatGreyscale:
		return "Greyscale"
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	case FormatBGR:
		return "BGR"
	case FormatBGRA:
		return "BGRA"
	case FormatDXT1:
		return "DXT1"
	case FormatDXT5:
		return "DXT5"
	default:
		return fmt.Sprintf("Invalid(0x%x)", uint8(f))
	}
}

package tpc

import (
	"encoding/binary"
	"fmt"
	"math"
)

// HeaderSize is the fixed binary size of a container header.
const HeaderSize = 128

// MaxDimension is the exclusive upper bound on texture width and height.
const MaxDimension = 0x8000

// Header represents the fixed-layout container header.
type Header struct {
	DataSize uint32    // +0x00: byte size of the compressed mip chain; 0 means uncompressed
	Unknown  float32   // +0x04: unused by the original tools
	Width    uint16    // +0x08: width of the largest mip level
	Height   uint16    // +0x0A: height of the largest mip level
	Encoding uint8     // +0x0C: pixel encoding selector
	MipCount uint8     // +0x0D: mip levels per layer
	Reserved [114]byte // +0x0E: padding to 128 bytes
}

// ParseHeader reads and validates a container header from the front of data.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncatedStream, HeaderSize, len(data))
	}
	h := &Header{}
	h.DecodeFrom(data)
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// DecodeFrom reads the header from the given buffer.
// Does not validate - use ParseHeader for validation.
func (h *Header) DecodeFrom(data []byte) {
	h.DataSize = binary.LittleEndian.Uint32(data[0x00:0x04])
	h.Unknown = math.Float32frombits(binary.LittleEndian.Uint32(data[0x04:0x08]))
	h.Width = binary.LittleEndian.Uint16(data[0x08:0x0A])
	h.Height = binary.LittleEndian.Uint16(data[0x0A:0x0C])
	h.Encoding = data[0x0C]
	h.MipCount = data[0x0D]
	copy(h.Reserved[:], data[0x0E:HeaderSize])
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0x00:0x04], h.DataSize)
	binary.LittleEndian.PutUint32(buf[0x04:0x08], math.Float32bits(h.Unknown))
	binary.LittleEndian.PutUint16(buf[0x08:0x0A], h.Width)
	binary.LittleEndian.PutUint16(buf[0x0A:0x0C], h.Height)
	buf[0x0C] = h.Encoding
	buf[0x0D] = h.MipCount
	copy(buf[0x0E:HeaderSize], h.Reserved[:])
}

// Validate checks dimension range and encoding resolution. Dimensions are
// rejected before any pixel data is touched.
func (h *Header) Validate() error {
	if h.Width >= MaxDimension || h.Height >= MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrDimensionOutOfRange, h.Width, h.Height)
	}
	if ResolveFormat(h.Encoding, h.Compressed()) == FormatInvalid {
		return fmt.Errorf("%w: 0x%02x (compressed=%t)", ErrUnknownEncoding, h.Encoding, h.Compressed())
	}
	return nil
}

// Compressed reports whether the pixel data is block-compressed. A zero
// DataSize marks an uncompressed chain whose true size is recomputed from
// the format and dimensions.
func (h *Header) Compressed() bool {
	return h.DataSize != 0
}

// Format resolves the header's encoding byte through the format table.
func (h *Header) Format() PixelFormat {
	return ResolveFormat(h.Encoding, h.Compressed())
}

// MipLevels returns the per-layer mip count, treating a zero field as a
// single level.
func (h *Header) MipLevels() int {
	if h.MipCount < 1 {
		return 1
	}
	return int(h.MipCount)
}

// String returns a human-readable representation.
func (h *Header) String() string {
	return fmt.Sprintf("TPC: %dx%d, %d mips, format=%s, data_size=%d",
		h.Width, h.Height, h.MipLevels(), h.Format(), h.DataSize)
}

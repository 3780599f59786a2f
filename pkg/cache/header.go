// Package cache provides a zstd-compressed on-disk store for decoded
// texture data.
//
// Decoding a container is cheap but not free; bulk viewers re-open the same
// textures constantly. Each cache entry is a small framed blob: a fixed
// 20-byte header carrying the uncompressed and compressed lengths, followed
// by a zstd frame. Entries are content-addressed by the hash of the source
// container bytes, so a changed source never hits a stale entry.
package cache

import (
	"encoding/binary"
	"fmt"
)

// Magic bytes identifying a cache entry header.
var Magic = [4]byte{0x54, 0x58, 0x43, 0x31} // "TXC1"

// HeaderSize is the fixed binary size of an entry header.
const HeaderSize = 20 // 4 + 8 + 8 bytes

// Header describes one cache entry.
type Header struct {
	Magic            [4]byte
	Length           uint64 // Uncompressed size
	CompressedLength uint64 // Compressed size
}

// NewHeader creates an entry header with the given sizes.
func NewHeader(uncompressedSize, compressedSize uint64) *Header {
	return &Header{
		Magic:            Magic,
		Length:           uncompressedSize,
		CompressedLength: compressedSize,
	}
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.Length == 0 {
		return fmt.Errorf("uncompressed size is zero")
	}
	if h.CompressedLength == 0 {
		return fmt.Errorf("compressed size is zero")
	}
	return nil
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint64(buf[4:12], h.Length)
	binary.LittleEndian.PutUint64(buf[12:20], h.CompressedLength)
}

// DecodeFrom reads and validates the header from the given buffer.
func (h *Header) DecodeFrom(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(data))
	}
	copy(h.Magic[:], data[0:4])
	h.Length = binary.LittleEndian.Uint64(data[4:12])
	h.CompressedLength = binary.LittleEndian.Uint64(data[12:20])
	return h.Validate()
}

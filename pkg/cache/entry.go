package cache

import (
	"fmt"

	"github.com/DataDog/zstd"
)

// DefaultCompressionLevel is the zstd level used for new entries. Decoded
// pixel data compresses well and cache writes sit on the interactive path,
// so speed wins over ratio.
const DefaultCompressionLevel = zstd.BestSpeed

// EncodeEntry frames data as a compressed cache entry.
func EncodeEntry(data []byte, level int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cache: refusing to encode empty entry")
	}

	compressed, err := zstd.CompressLevel(nil, data, level)
	if err != nil {
		return nil, fmt.Errorf("compress entry: %w", err)
	}

	header := NewHeader(uint64(len(data)), uint64(len(compressed)))
	out := make([]byte, HeaderSize+len(compressed))
	header.EncodeTo(out)
	copy(out[HeaderSize:], compressed)
	return out, nil
}

// DecodeEntry unframes and decompresses a cache entry.
func DecodeEntry(blob []byte) ([]byte, error) {
	header := &Header{}
	if err := header.DecodeFrom(blob); err != nil {
		return nil, fmt.Errorf("parse entry header: %w", err)
	}

	body := blob[HeaderSize:]
	if uint64(len(body)) != header.CompressedLength {
		return nil, fmt.Errorf("entry body is %d bytes, header declares %d", len(body), header.CompressedLength)
	}

	data, err := zstd.Decompress(make([]byte, 0, header.Length), body)
	if err != nil {
		return nil, fmt.Errorf("decompress entry: %w", err)
	}
	if uint64(len(data)) != header.Length {
		return nil, fmt.Errorf("entry decompressed to %d bytes, header declares %d", len(data), header.Length)
	}

	return data, nil
}

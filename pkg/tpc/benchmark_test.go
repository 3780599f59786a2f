package tpc

import "testing"

func benchmarkBlob(encoding uint8, dataSize uint32, w, h uint16, pixels []byte) []byte {
	return buildContainer(dataSize, w, h, encoding, 1, pixels, "")
}

func BenchmarkDecodeRGB(b *testing.B) {
	blob := benchmarkBlob(EncodingRGB, 0, 256, 256, make([]byte, 256*256*3))
	b.SetBytes(int64(len(blob)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(blob); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeDXT1(b *testing.B) {
	size := FormatDXT1.Size(256, 256)
	blob := benchmarkBlob(EncodingRGB, uint32(size), 256, 256, make([]byte, size))
	b.SetBytes(int64(len(blob)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(blob); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeDXT5(b *testing.B) {
	size := FormatDXT5.Size(256, 256)
	blob := benchmarkBlob(EncodingRGBA, uint32(size), 256, 256, make([]byte, size))
	b.SetBytes(int64(len(blob)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(blob); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeSwizzle(b *testing.B) {
	data := make([]byte, 256*256*4)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		deSwizzle(data, 256, 256, 4)
	}
}

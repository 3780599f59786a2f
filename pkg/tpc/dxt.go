package tpc

import (
	"encoding/binary"
	"fmt"
)

// decodeDXT1 decodes a DXT1-compressed mip level into a row-major RGBA8
// buffer. Partial tiles at the image edge consume a full block of input but
// only write the in-bounds pixels.
func decodeDXT1(w, h int, data []byte) ([]byte, error) {
	bw := (w + 3) / 4
	bh := (h + 3) / 4

	if need := bw * bh * 8; len(data) < need {
		return nil, fmt.Errorf("%w: DXT1 level %dx%d needs %d bytes, have %d", ErrTruncatedStream, w, h, need, len(data))
	}

	out := make([]byte, w*h*4)
	offset := 0

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			c0 := binary.LittleEndian.Uint16(data[offset:])
			c1 := binary.LittleEndian.Uint16(data[offset+2:])
			indices := binary.LittleEndian.Uint32(data[offset+4:])
			offset += 8

			colors := colorPalette(c0, c1, c0 > c1)

			writeTile(out, w, h, bx, by, func(p int) [4]uint8 {
				return colors[(indices>>uint(2*p))&0x03]
			})
		}
	}

	return out, nil
}

// decodeDXT5 decodes a DXT5-compressed mip level into a row-major RGBA8
// buffer. The color half of each block always uses the opaque four-color
// palette, independent of the endpoint comparison.
func decodeDXT5(w, h int, data []byte) ([]byte, error) {
	bw := (w + 3) / 4
	bh := (h + 3) / 4

	if need := bw * bh * 16; len(data) < need {
		return nil, fmt.Errorf("%w: DXT5 level %dx%d needs %d bytes, have %d", ErrTruncatedStream, w, h, need, len(data))
	}

	out := make([]byte, w*h*4)
	offset := 0

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			// Alpha block (8 bytes): 2 endpoints + 48 bits of 3-bit indices.
			a0 := data[offset]
			a1 := data[offset+1]

			var alphaBits uint64
			for i := 0; i < 6; i++ {
				alphaBits |= uint64(data[offset+2+i]) << (8 * i)
			}

			// Color block (8 bytes), same layout as DXT1.
			c0 := binary.LittleEndian.Uint16(data[offset+8:])
			c1 := binary.LittleEndian.Uint16(data[offset+10:])
			indices := binary.LittleEndian.Uint32(data[offset+12:])
			offset += 16

			alpha := alphaPalette(a0, a1)
			colors := colorPalette(c0, c1, true)

			writeTile(out, w, h, bx, by, func(p int) [4]uint8 {
				c := colors[(indices>>uint(2*p))&0x03]
				c[3] = alpha[(alphaBits>>uint(3*p))&0x07]
				return c
			})
		}
	}

	return out, nil
}

// writeTile stores one 4x4 tile of pixels into a row-major RGBA buffer,
// skipping coordinates outside the image bounds.
func writeTile(out []byte, w, h, bx, by int, pixel func(p int) [4]uint8) {
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			x := bx*4 + px
			y := by*4 + py
			if x >= w || y >= h {
				continue
			}
			c := pixel(py*4 + px)
			i := (y*w + x) * 4
			out[i+0] = c[0]
			out[i+1] = c[1]
			out[i+2] = c[2]
			out[i+3] = c[3]
		}
	}
}

// rgb565 expands a 16-bit RGB565 value to 8-bit channels by left shift alone,
// without low-bit replication, matching the original decoder bit-for-bit.
func rgb565(c uint16) (r, g, b uint8) {
	r = uint8(c>>11) << 3
	g = uint8((c>>5)&0x3F) << 2
	b = uint8(c&0x1F) << 3
	return
}

// colorPalette builds the 4-entry RGBA palette of a DXT color block. With
// fourColor set the two derived entries interpolate at thirds and everything
// is opaque; otherwise the third entry is the midpoint and the fourth is
// transparent black.
func colorPalette(c0, c1 uint16, fourColor bool) [4][4]uint8 {
	r0, g0, b0 := rgb565(c0)
	r1, g1, b1 := rgb565(c1)

	p := [4][4]uint8{
		{r0, g0, b0, 255},
		{r1, g1, b1, 255},
	}

	if fourColor {
		p[2] = [4]uint8{
			uint8((2*int(r0) + int(r1)) / 3),
			uint8((2*int(g0) + int(g1)) / 3),
			uint8((2*int(b0) + int(b1)) / 3),
			255,
		}
		p[3] = [4]uint8{
			uint8((int(r0) + 2*int(r1)) / 3),
			uint8((int(g0) + 2*int(g1)) / 3),
			uint8((int(b0) + 2*int(b1)) / 3),
			255,
		}
	} else {
		p[2] = [4]uint8{
			uint8((int(r0) + int(r1)) / 2),
			uint8((int(g0) + int(g1)) / 2),
			uint8((int(b0) + int(b1)) / 2),
			255,
		}
		p[3] = [4]uint8{0, 0, 0, 0}
	}

	return p
}

// alphaPalette builds the 8-entry alpha palette of a DXT5 alpha block.
func alphaPalette(a0, a1 uint8) [8]uint8 {
	var p [8]uint8
	p[0], p[1] = a0, a1

	if a0 > a1 {
		// 8-step interpolation
		for i := 2; i < 8; i++ {
			p[i] = uint8(((8-i)*int(a0) + (i-1)*int(a1)) / 7)
		}
	} else {
		// 6-step interpolation + endpoints
		for i := 2; i < 6; i++ {
			p[i] = uint8(((6-i)*int(a0) + (i-1)*int(a1)) / 5)
		}
		p[6] = 0
		p[7] = 255
	}

	return p
}

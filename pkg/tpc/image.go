package tpc

import (
	"fmt"
	"image"
)

// Image renders one mipmap of one layer as an image.RGBA. The mipmap must be
// in a raw format; Decode already normalizes compressed data.
func (t *Texture) Image(layer, level int) (*image.RGBA, error) {
	if layer < 0 || layer >= len(t.Layers) {
		return nil, fmt.Errorf("tpc: layer %d out of range (have %d)", layer, len(t.Layers))
	}
	if level < 0 || level >= len(t.Layers[layer].Mipmaps) {
		return nil, fmt.Errorf("tpc: mip level %d out of range (have %d)", level, len(t.Layers[layer].Mipmaps))
	}

	m := t.Layers[layer].Mipmaps[level]
	pixels, err := toRGBAPixels(m)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	copy(img.Pix, pixels)
	return img, nil
}

// FromImage builds a single-layer texture from a row-major RGBA image plus
// optional smaller mip levels. Levels must be ordered largest first.
func FromImage(levels ...*image.RGBA) (*Texture, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("tpc: need at least one image level")
	}

	mips := make([]Mipmap, len(levels))
	for i, img := range levels {
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()
		if w >= MaxDimension || h >= MaxDimension {
			return nil, fmt.Errorf("%w: %dx%d", ErrDimensionOutOfRange, w, h)
		}

		data := make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(data[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
		}
		mips[i] = Mipmap{Width: w, Height: h, Format: FormatRGBA, Data: data}
	}

	return &Texture{Layers: []Layer{{Mipmaps: mips}}}, nil
}

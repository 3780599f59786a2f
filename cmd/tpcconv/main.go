// tpcconv - TPC texture container converter
//
// Converts between TPC containers and editable images. Compressed containers
// are decompressed to RGBA on decode, so the PNG side is lossless storage of
// whatever the container held.
//
// Usage:
//   tpcconv -mode info   -input texture.tpc
//   tpcconv -mode decode -input texture.tpc -output texture.png
//   tpcconv -mode encode -input texture.png -output texture.tpc
//   tpcconv -mode batch  -input textures/  -output png/
//
// Encode accepts PNG, GIF, JPEG, BMP, TIFF or WEBP input and always emits an
// uncompressed RGBA container.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/odysseytools/tpcTools/pkg/cache"
	"github.com/odysseytools/tpcTools/pkg/tpc"
	"github.com/odysseytools/tpcTools/tool"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"
)

var (
	mode       string
	inputPath  string
	outputPath string
	cacheDir   string
	layerIndex int
	mipLevel   int
	mipCount   int
	txiPath    string
)

func init() {
	flag.StringVar(&mode, "mode", "", "Operation mode: info, decode, encode, batch")
	flag.StringVar(&inputPath, "input", "", "Input file (or directory for batch)")
	flag.StringVar(&outputPath, "output", "", "Output file (or directory for batch)")
	flag.StringVar(&cacheDir, "cache", "", "Cache directory for batch mode (optional)")
	flag.IntVar(&layerIndex, "layer", 0, "Layer (cube face / animation frame) to decode")
	flag.IntVar(&mipLevel, "level", 0, "Mip level to decode")
	flag.IntVar(&mipCount, "mips", 1, "Mip levels to generate when encoding")
	flag.StringVar(&txiPath, "txi", "", "TXI sidecar file to embed when encoding (optional)")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := validateFlags(); err != nil {
		flag.Usage()
		return err
	}

	switch mode {
	case "info":
		return runInfo()
	case "decode":
		return runDecode()
	case "encode":
		return runEncode()
	case "batch":
		return runBatch()
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

func validateFlags() error {
	if mode == "" {
		return fmt.Errorf("mode is required")
	}
	if inputPath == "" {
		return fmt.Errorf("input is required")
	}
	if mode != "info" && outputPath == "" {
		return fmt.Errorf("%s mode requires -output", mode)
	}
	if mipCount < 1 {
		return fmt.Errorf("-mips must be at least 1")
	}
	return nil
}

func runInfo() error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	texture, err := tpc.Decode(raw)
	if err != nil {
		return err
	}

	level0 := texture.Layers[0].Mipmaps[0]
	fmt.Printf("%s: %s %dx%d, %d layers x %d mips\n",
		inputPath, texture.Format(), level0.Width, level0.Height,
		texture.LayerCount(), len(texture.Layers[0].Mipmaps))

	switch {
	case texture.IsCubeMap():
		fmt.Printf("  cube map (detection: %s)\n", cubeSourceName(texture.Cube.Source))
	case texture.Animated:
		fmt.Printf("  flip-book: %dx%d frames @ %g fps\n", texture.FramesX, texture.FramesY, texture.FPS)
	}
	if texture.AlphaTest != 0 {
		fmt.Printf("  alpha test: %g\n", texture.AlphaTest)
	}
	if texture.TXI != "" {
		fmt.Printf("  txi: %d bytes of directives\n", len(texture.TXI))
	}
	return nil
}

func cubeSourceName(s tpc.CubeSource) string {
	if s == tpc.CubeExplicit {
		return "explicit directive"
	}
	return "shape heuristic"
}

func runDecode() error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	texture, err := tpc.Decode(raw)
	if err != nil {
		return err
	}

	img, err := texture.Image(layerIndex, mipLevel)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, img)
}

func runEncode() error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	src, _, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	texture, err := tpc.FromImage(buildMipLevels(toRGBA(src), mipCount)...)
	if err != nil {
		return err
	}

	if txiPath != "" {
		text, err := os.ReadFile(txiPath)
		if err != nil {
			return fmt.Errorf("read txi: %w", err)
		}
		texture.TXI = string(text)
	}

	blob, err := tpc.Encode(texture)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, blob, 0644)
}

func runBatch() error {
	var store *cache.Store
	if cacheDir != "" {
		var err error
		if store, err = cache.NewStore(cacheDir); err != nil {
			return err
		}
	}

	stats, err := tool.ConvertDir(inputPath, outputPath, store)
	if err != nil {
		return err
	}

	fmt.Printf("converted %d (%d cached, %d failed)\n", stats.Converted, stats.CacheHits, stats.Failed)
	return nil
}

// toRGBA normalizes any decoded input image to row-major RGBA.
func toRGBA(src image.Image) *image.RGBA {
	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(img, img.Bounds(), src, b.Min, xdraw.Src)
	return img
}

// buildMipLevels generates up to count levels by successive halving of the
// base image, flooring each axis at 1 pixel.
func buildMipLevels(base *image.RGBA, count int) []*image.RGBA {
	levels := []*image.RGBA{base}
	w := base.Bounds().Dx()
	h := base.Bounds().Dy()

	for len(levels) < count && (w > 1 || h > 1) {
		if w >>= 1; w < 1 {
			w = 1
		}
		if h >>= 1; h < 1 {
			h = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), levels[len(levels)-1], levels[len(levels)-1].Bounds(), xdraw.Src, nil)
		levels = append(levels, dst)
	}

	return levels
}

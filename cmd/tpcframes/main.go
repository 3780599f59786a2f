// tpcframes - explode a TPC container into per-layer images
//
// Cube maps become six face images, flip-books become one image per
// animation frame, plain textures a single image. Output format follows the
// -ext flag (png or bmp).
//
// Usage:
//   tpcframes -input anim.tpc -output frames/
//   tpcframes -input skybox.tpc -output faces/ -ext bmp
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/odysseytools/tpcTools/pkg/tpc"
)

var (
	inputPath string
	outputDir string
	ext       string
	mipLevel  int
)

func init() {
	flag.StringVar(&inputPath, "input", "", "Input container file")
	flag.StringVar(&outputDir, "output", "", "Output directory")
	flag.StringVar(&ext, "ext", "png", "Output format: png or bmp")
	flag.IntVar(&mipLevel, "level", 0, "Mip level to export")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if inputPath == "" || outputDir == "" {
		flag.Usage()
		return fmt.Errorf("input and output are required")
	}

	encoder, err := encoderFor(ext)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	texture, err := tpc.Decode(raw)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	for i := 0; i < texture.LayerCount(); i++ {
		img, err := texture.Image(i, mipLevel)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("%s_%s.%s", stem, layerName(texture, i), ext)
		if err := imgio.Save(filepath.Join(outputDir, name), img, encoder); err != nil {
			return fmt.Errorf("save layer %d: %w", i, err)
		}
	}

	fmt.Printf("wrote %d layers to %s\n", texture.LayerCount(), outputDir)
	return nil
}

func encoderFor(ext string) (imgio.Encoder, error) {
	switch strings.ToLower(ext) {
	case "png":
		return imgio.PNGEncoder(), nil
	case "bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", ext)
	}
}

// cubeFaceNames follows the +x/-x/+y/-y/+z/-z face order of the decoded
// layout.
var cubeFaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

func layerName(t *tpc.Texture, i int) string {
	switch {
	case t.IsCubeMap():
		return cubeFaceNames[i]
	case t.Animated:
		return fmt.Sprintf("frame%03d", i)
	default:
		return fmt.Sprintf("layer%d", i)
	}
}

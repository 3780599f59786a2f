// Package tool implements the higher-level batch operations the command
// line binaries are thin shells over.
package tool

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/odysseytools/tpcTools/pkg/cache"
	"github.com/odysseytools/tpcTools/pkg/tpc"
)

// ConvertStats summarizes one batch conversion run.
type ConvertStats struct {
	Converted int
	CacheHits int
	Failed    int
}

// ConvertFile decodes one container file and writes its largest mip level as
// PNG. With a non-nil store, the PNG bytes are cached keyed by the source
// content, and a warm entry skips the decode entirely.
func ConvertFile(inPath, outPath string, store *cache.Store) (cacheHit bool, err error) {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", inPath, err)
	}

	key := cache.Key(raw)
	if store != nil {
		if data, err := store.Get(key); err == nil {
			return true, writeFile(outPath, data)
		}
	}

	texture, err := tpc.Decode(raw)
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", inPath, err)
	}

	img, err := texture.Image(0, 0)
	if err != nil {
		return false, fmt.Errorf("render %s: %w", inPath, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return false, fmt.Errorf("encode png: %w", err)
	}

	if store != nil {
		if err := store.Put(key, buf.Bytes()); err != nil {
			return false, fmt.Errorf("cache %s: %w", inPath, err)
		}
	}

	return false, writeFile(outPath, buf.Bytes())
}

// ConvertDir walks inputDir for container files and converts each to a PNG
// under outputDir, preserving relative paths. Files that fail to decode are
// counted and reported on stderr rather than aborting the batch.
func ConvertDir(inputDir, outputDir string, store *cache.Store) (ConvertStats, error) {
	var stats ConvertStats

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !IsContainerPath(path) {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		outPath := filepath.Join(outputDir, replaceExt(relPath, ".png"))
		hit, err := ConvertFile(path, outPath, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
			stats.Failed++
			return nil
		}

		stats.Converted++
		if hit {
			stats.CacheHits++
		}
		return nil
	})

	return stats, err
}

// IsContainerPath reports whether a path looks like a texture container
// file.
func IsContainerPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tpc")
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Package txi parses the TXI texture-information directives the Odyssey
// engine stores either as standalone sidecar files or appended to a TPC
// container.
//
// The format is plain ASCII: one directive per line, a case-insensitive key
// followed by whitespace-separated values. Only the directives that affect
// texture layout and presentation are modeled; unknown directives are
// tolerated and skipped.
package txi

import (
	"bufio"
	"strconv"
	"strings"
)

// Features holds the parsed directive values. Set flags distinguish "absent"
// from an explicit zero where the distinction matters to layout decisions.
type Features struct {
	Cube    bool // cube 0|1
	CubeSet bool

	ProcedureType string // proceduretype cycle|water|...
	NumX          int    // numx: flip-book grid columns
	NumY          int    // numy: flip-book grid rows
	FPS           float32

	AlphaTest    float32
	AlphaTestSet bool

	DefaultWidth  int
	DefaultHeight int

	Filter   bool
	MipMap   bool
	Blending string
}

// Parse reads directives from TXI text. Parsing is tolerant: malformed
// values and unknown keys are skipped rather than rejected, matching the
// original tools.
func Parse(text string) Features {
	f := Features{MipMap: true}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 1 {
			continue
		}

		key := strings.ToLower(fields[0])
		value := ""
		if len(fields) > 1 {
			value = fields[1]
		}

		switch key {
		case "cube":
			if b, ok := parseBool(value); ok {
				f.Cube = b
				f.CubeSet = true
			}
		case "proceduretype":
			f.ProcedureType = strings.ToLower(value)
		case "numx":
			if n, err := strconv.Atoi(value); err == nil {
				f.NumX = n
			}
		case "numy":
			if n, err := strconv.Atoi(value); err == nil {
				f.NumY = n
			}
		case "fps":
			if v, err := strconv.ParseFloat(value, 32); err == nil {
				f.FPS = float32(v)
			}
		case "alphatest":
			if v, err := strconv.ParseFloat(value, 32); err == nil {
				f.AlphaTest = float32(v)
				f.AlphaTestSet = true
			}
		case "defaultwidth":
			if n, err := strconv.Atoi(value); err == nil {
				f.DefaultWidth = n
			}
		case "defaultheight":
			if n, err := strconv.Atoi(value); err == nil {
				f.DefaultHeight = n
			}
		case "filter":
			if b, ok := parseBool(value); ok {
				f.Filter = b
			}
		case "mipmap":
			if b, ok := parseBool(value); ok {
				f.MipMap = b
			}
		case "blending":
			f.Blending = strings.ToLower(value)
		}
	}

	return f
}

// parseBool accepts the 0/1 flags the directives use.
func parseBool(value string) (bool, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return false, false
	}
	return n != 0, true
}

package tpc

import "errors"

// Error kinds returned by the codec. All malformed input is reported through
// one of these sentinels (wrapped with context); the codec never panics on
// well-formed-length input.
var (
	// ErrDimensionOutOfRange is returned when the header declares a width or
	// height of 0x8000 or more.
	ErrDimensionOutOfRange = errors.New("tpc: dimension out of range")

	// ErrUnknownEncoding is returned when the encoding byte has no format
	// table entry for the given compressed flag.
	ErrUnknownEncoding = errors.New("tpc: unknown encoding")

	// ErrTruncatedStream is returned when fewer bytes remain than a header,
	// mip level or compressed tile requires.
	ErrTruncatedStream = errors.New("tpc: truncated stream")

	// ErrSizeMismatch is returned when the declared data size disagrees with
	// the size computed from format, dimensions and mip count.
	ErrSizeMismatch = errors.New("tpc: data size mismatch")

	// ErrLayerCountMismatch is returned when the total mipmap count is not
	// evenly divisible by the derived layer count.
	ErrLayerCountMismatch = errors.New("tpc: layer count mismatch")

	// ErrCubeFaceMismatch is returned when the six cube faces disagree in
	// width, height or byte length at some mip level.
	ErrCubeFaceMismatch = errors.New("tpc: cube face dimension mismatch")

	// ErrInvalidMetadataEncoding is returned when the trailing metadata bytes
	// are not valid ASCII text.
	ErrInvalidMetadataEncoding = errors.New("tpc: invalid metadata encoding")
)

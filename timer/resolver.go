package timer

import (
	"fmt"

	"github.com/sarchlab/frameclock/hardware"
)

// PreciseUnavailable is what Precise returns on platforms without a beam
// position register.
const PreciseUnavailable uint32 = 0

// FrameSource tells which frame counter read a beam sample was attributed to.
type FrameSource int

// The two possible attributions.
const (
	FrameBefore FrameSource = iota
	FrameAfter
)

func (s FrameSource) String() string {
	switch s {
	case FrameBefore:
		return "before"
	case FrameAfter:
		return "after"
	default:
		return fmt.Sprintf("FrameSource(%d)", int(s))
	}
}

// Resolution is a beam sample together with the frame it belongs to.
type Resolution struct {
	Source FrameSource
	Frame  uint16
	Beam   hardware.BeamPosition
}

// Resolve decides which frame a beam sample belongs to, given the frame
// counter read just before and just after the sample.
//
// The sample and the interrupt can interleave as follows, with frame A
// ending and frame B starting at the interrupt:
//
//	a) before, beam, after all in A
//	b) before, beam in A; after in B
//	c) before in A; beam, after in B
//	d) before, beam, after all in B
//
// A beam near the top of the raster can only have been read in B, so the
// after value is used. Anywhere else the beam was read in A and the before
// value is used. Two interrupts within one resolve are not handled.
func Resolve(
	before, after uint16,
	beam hardware.BeamPosition,
	g hardware.Geometry,
) Resolution {
	if beam.Y < g.LowYThreshold {
		return Resolution{Source: FrameAfter, Frame: after, Beam: beam}
	}

	return Resolution{Source: FrameBefore, Frame: before, Beam: beam}
}

// Timestamp returns the precise time of the resolution, in beam positions.
func (r Resolution) Timestamp(g hardware.Geometry) uint32 {
	return uint32(r.Frame)*g.LinesPerFrame*g.PositionsPerLine +
		uint32(r.Beam.Y)*g.PositionsPerLine +
		uint32(r.Beam.X)
}

// PreciseDomain returns the domain of precise timestamps for a geometry. It
// wraps together with the 16-bit frame counter.
func PreciseDomain(g hardware.Geometry) Domain {
	return Domain{
		Name:    "precise",
		Modulus: CoarseDomain.Modulus * uint64(g.UnitsPerFrame()),
	}
}

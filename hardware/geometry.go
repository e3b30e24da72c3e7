package hardware

import (
	"strings"
	"time"
)

// BeamPositionRate is the speed of the beam on both standards. One beam
// position lasts 0.4 us.
const BeamPositionRate = 2.5 * MHz

// Geometry describes the raster of a video standard.
type Geometry struct {
	Name             string
	LinesPerFrame    uint32
	PositionsPerLine uint32

	// LowYThreshold is the line below which a beam sample is attributed to
	// the frame that began after the first frame counter read.
	LowYThreshold uint16

	// PositionRate is the number of beam positions scanned per second. The
	// frame rate follows from it.
	PositionRate Freq
}

// PAL is a raster of 313 lines with 160 beam positions per line. A frame
// lasts 20.032 ms.
var PAL = Geometry{
	Name:             "PAL",
	LinesPerFrame:    313,
	PositionsPerLine: 160,
	LowYThreshold:    100,
	PositionRate:     BeamPositionRate,
}

// NTSC is a raster of 263 lines with 160 beam positions per line. A frame
// lasts 16.832 ms.
var NTSC = Geometry{
	Name:             "NTSC",
	LinesPerFrame:    263,
	PositionsPerLine: 160,
	LowYThreshold:    100,
	PositionRate:     BeamPositionRate,
}

// GeometryByName looks up a standard geometry, ignoring case.
func GeometryByName(name string) (Geometry, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case PAL.Name:
		return PAL, true
	case NTSC.Name:
		return NTSC, true
	default:
		return Geometry{}, false
	}
}

// UnitsPerFrame returns the number of beam positions in one frame.
func (g Geometry) UnitsPerFrame() uint32 {
	return g.LinesPerFrame * g.PositionsPerLine
}

// BeamRate returns the rate at which the beam position counter advances.
func (g Geometry) BeamRate() Freq {
	return g.PositionRate
}

// FrameRate returns the number of frames per second.
func (g Geometry) FrameRate() Freq {
	return g.PositionRate / Freq(g.UnitsPerFrame())
}

// FramePeriod returns the duration of one frame, a whole number of beam
// periods.
func (g Geometry) FramePeriod() time.Duration {
	return g.PositionRate.Period() * time.Duration(g.UnitsPerFrame())
}

// PositionOf decodes a frame-relative unit count into a beam position.
// Counts beyond one frame wrap.
func (g Geometry) PositionOf(units uint32) BeamPosition {
	units %= g.UnitsPerFrame()

	return BeamPosition{
		X: uint16(units % g.PositionsPerLine),
		Y: uint16(units / g.PositionsPerLine),
	}
}

// UnitsOf is the inverse of PositionOf.
func (g Geometry) UnitsOf(p BeamPosition) uint32 {
	return uint32(p.Y)*g.PositionsPerLine + uint32(p.X)
}

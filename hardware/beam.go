package hardware

import "fmt"

// Beam register layout: bits 0-7 carry the horizontal position, bits 8-16
// the vertical position.
const (
	beamXMask  = 0xFF
	beamYShift = 8
	beamYMask  = 0x1FF
)

// BeamPosition is the horizontal and vertical position of the raster beam.
type BeamPosition struct {
	X uint16
	Y uint16
}

func (p BeamPosition) String() string {
	return fmt.Sprintf("%03d/%03d", p.Y, p.X)
}

// DecodeBeamRegister splits one raw register value into a position.
func DecodeBeamRegister(reg uint32) BeamPosition {
	return BeamPosition{
		X: uint16(reg & beamXMask),
		Y: uint16((reg >> beamYShift) & beamYMask),
	}
}

// EncodeBeamRegister packs a position into the register layout.
func EncodeBeamRegister(p BeamPosition) uint32 {
	return uint32(p.X)&beamXMask | (uint32(p.Y)&beamYMask)<<beamYShift
}

// A BeamSampler reads the beam position register. Each call is one register
// read and carries no relation to any interrupt counter.
type BeamSampler interface {
	SampleBeam() BeamPosition
}

package timer

import (
	"log"

	"github.com/sarchlab/frameclock/hardware"
)

// Builder can build timers.
type Builder struct {
	geometry   hardware.Geometry
	interrupts hardware.InterruptController
	beam       hardware.BeamSampler
}

// MakeBuilder returns a new Builder with a PAL geometry.
func MakeBuilder() Builder {
	return Builder{
		geometry: hardware.PAL,
	}
}

// WithGeometry sets the raster geometry used by the precise clock.
func (b Builder) WithGeometry(g hardware.Geometry) Builder {
	b.geometry = g
	return b
}

// WithInterruptController sets where the vertical blank handler is
// installed.
func (b Builder) WithInterruptController(
	ic hardware.InterruptController,
) Builder {
	b.interrupts = ic
	return b
}

// WithBeamSampler sets the beam position register. Without one, the precise
// clock is unavailable.
func (b Builder) WithBeamSampler(s hardware.BeamSampler) Builder {
	b.beam = s
	return b
}

// WithChip sets both the interrupt controller and the beam sampler.
func (b Builder) WithChip(c hardware.Chip) Builder {
	b.interrupts = c
	b.beam = c
	return b
}

// Build creates a new Timer. The handler is not installed until Create.
func (b Builder) Build(name string) *Timer {
	if b.interrupts == nil {
		log.Panicf("timer %s requires an interrupt controller", name)
	}

	if b.geometry.UnitsPerFrame() == 0 {
		log.Panicf("timer %s has an empty geometry", name)
	}

	t := &Timer{
		HookableBase: NewHookableBase(),
		name:         name,
		geometry:     b.geometry,
		interrupts:   b.interrupts,
		beam:         b.beam,
	}
	t.handler = t.counter.Increment

	return t
}

package hardware

import (
	"sync"
	"sync/atomic"
)

// Raster is a deterministic chip. Its beam counter only moves when Step or
// Seek is called, and every frame wrap fires the vertical blank handler.
//
// Stepping is serialised; sampling may happen concurrently from any
// goroutine.
type Raster struct {
	geometry Geometry
	handlers handlerTable

	lock   sync.Mutex
	units  uint32
	frames atomic.Uint64
	reg    atomic.Uint32
}

// NewRaster creates a Raster with the beam at the top left of frame zero.
func NewRaster(g Geometry) *Raster {
	return &Raster{geometry: g}
}

// Geometry returns the raster geometry.
func (r *Raster) Geometry() Geometry {
	return r.geometry
}

// Install registers the handler for the given source.
func (r *Raster) Install(src InterruptSource, h Handler) {
	r.handlers.install(src, h)
}

// Uninstall removes the handler of the given source.
func (r *Raster) Uninstall(src InterruptSource) {
	r.handlers.install(src, nil)
}

// Installed reports whether a handler is registered for the source.
func (r *Raster) Installed(src InterruptSource) bool {
	return r.handlers.installed(src)
}

// SampleBeam reads the beam register.
func (r *Raster) SampleBeam() BeamPosition {
	return DecodeBeamRegister(r.reg.Load())
}

// Frames returns the number of frame wraps since creation. Unlike a frame
// counter it keeps counting while no handler is installed.
func (r *Raster) Frames() uint64 {
	return r.frames.Load()
}

// Step advances the beam by the given number of positions.
func (r *Raster) Step(units uint32) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.step(units)
}

// StepFrames advances the beam by whole frames.
func (r *Raster) StepFrames(n int) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for i := 0; i < n; i++ {
		r.step(r.geometry.UnitsPerFrame())
	}
}

// Seek moves the beam forward to the given position, wrapping into the next
// frame if the position is not ahead of the beam. Seeking to the current
// position advances a whole frame.
func (r *Raster) Seek(p BeamPosition) {
	r.lock.Lock()
	defer r.lock.Unlock()

	perFrame := r.geometry.UnitsPerFrame()
	target := r.geometry.UnitsOf(p) % perFrame

	distance := target + perFrame - r.units
	if distance > perFrame {
		distance -= perFrame
	}

	r.step(distance)
}

func (r *Raster) step(units uint32) {
	perFrame := r.geometry.UnitsPerFrame()

	for units > 0 {
		remaining := perFrame - r.units
		if units < remaining {
			r.units += units
			break
		}

		units -= remaining
		r.units = 0
		r.reg.Store(0)
		r.frames.Add(1)
		r.handlers.fire(VerticalBlank)
	}

	r.reg.Store(EncodeBeamRegister(r.geometry.PositionOf(r.units)))
}

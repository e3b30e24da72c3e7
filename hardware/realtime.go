package hardware

import (
	"sync"
	"time"
)

// Realtime is a chip that follows the wall clock. A goroutine fires the
// vertical blank handler whenever a frame period has passed since the
// previous one. The beam position is computed from the time elapsed since
// the current frame began.
//
// The beam never runs ahead of the interrupt. When the goroutine is late,
// the beam waits on the last position of the frame and the next frame begins
// when the handler actually runs. Beam samples and interrupts are ordered by
// a lock, so a handler must not sample the beam.
type Realtime struct {
	geometry Geometry
	handlers handlerTable
	now      func() time.Time

	mu         sync.RWMutex
	frameStart time.Time
	frames     uint64

	stop chan struct{}
	done chan struct{}
}

// NewRealtime creates a Realtime chip. It does not run until Start.
func NewRealtime(g Geometry) *Realtime {
	return &Realtime{
		geometry: g,
		now:      time.Now,
	}
}

// WithClock replaces the time source. It must be called before Start.
func (r *Realtime) WithClock(now func() time.Time) *Realtime {
	r.now = now
	return r
}

// Geometry returns the raster geometry.
func (r *Realtime) Geometry() Geometry {
	return r.geometry
}

// Install registers the handler for the given source.
func (r *Realtime) Install(src InterruptSource, h Handler) {
	r.handlers.install(src, h)
}

// Uninstall removes the handler of the given source.
func (r *Realtime) Uninstall(src InterruptSource) {
	r.handlers.install(src, nil)
}

// Frames returns the number of frame interrupts raised so far.
func (r *Realtime) Frames() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frames
}

// Start begins the frame interrupts. Calling Start on a running chip has no
// effect. Start and Stop must be called from the same goroutine.
func (r *Realtime) Start() {
	if r.stop != nil {
		return
	}

	r.mu.Lock()
	r.frameStart = r.now()
	r.mu.Unlock()

	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.run(r.stop, r.done)
}

// Stop ends the frame interrupts and waits for the interrupt goroutine to
// exit. The beam stays on the last position of the frame.
func (r *Realtime) Stop() {
	if r.stop == nil {
		return
	}

	close(r.stop)
	<-r.done

	r.stop = nil
	r.done = nil
}

func (r *Realtime) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	period := r.geometry.FramePeriod()

	for {
		r.mu.RLock()
		boundary := r.frameStart.Add(period)
		r.mu.RUnlock()

		if !r.waitUntil(boundary, stop) {
			return
		}

		r.mu.Lock()
		r.frames++
		r.frameStart = r.now()
		r.handlers.fire(VerticalBlank)
		r.mu.Unlock()
	}
}

// waitUntil blocks until the clock reaches t. It returns false if stop is
// closed first.
func (r *Realtime) waitUntil(t time.Time, stop <-chan struct{}) bool {
	for {
		left := t.Sub(r.now())
		if left <= 0 {
			return true
		}

		timer := time.NewTimer(left)
		select {
		case <-stop:
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

// SampleBeam returns the beam position at the current instant. Before Start
// the beam rests at the top left corner.
func (r *Realtime) SampleBeam() BeamPosition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.frameStart.IsZero() {
		return BeamPosition{}
	}

	last := uint64(r.geometry.UnitsPerFrame() - 1)

	elapsed := r.now().Sub(r.frameStart)
	if elapsed < 0 {
		elapsed = 0
	}

	units := uint64(elapsed / r.geometry.BeamRate().Period())
	if units > last {
		units = last
	}

	return r.geometry.PositionOf(uint32(units))
}

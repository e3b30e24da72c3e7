package timer

import (
	"sync/atomic"

	"github.com/sarchlab/frameclock/hardware"
)

// Timer owns the frame counter and the game tick accumulator. One Timer is
// normally created per process and driven by the outer loop.
//
// The vertical blank handler and the reads of the frame counter may run on
// different goroutines. Process, Peek and Check belong to the outer loop and
// must not be called concurrently with each other. SetPaused, Paused and
// GameTicks may be called from anywhere.
type Timer struct {
	*HookableBase

	name       string
	geometry   hardware.Geometry
	interrupts hardware.InterruptController
	beam       hardware.BeamSampler
	handler    hardware.Handler

	counter   FrameCounter
	paused    atomic.Bool
	gameTicks atomic.Uint32
	lastTime  uint32
}

// Name returns the name of the timer.
func (t *Timer) Name() string {
	return t.name
}

// Geometry returns the raster geometry the precise clock is based on.
func (t *Timer) Geometry() hardware.Geometry {
	return t.geometry
}

// FrameCounter exposes the counter incremented by the interrupt handler.
func (t *Timer) FrameCounter() *FrameCounter {
	return &t.counter
}

// HasPrecise reports whether the platform provides a beam position register.
func (t *Timer) HasPrecise() bool {
	return t.beam != nil
}

// Create resets the frame counter and installs the vertical blank handler.
// Creating a timer twice without Destroy in between is not supported.
func (t *Timer) Create() {
	t.counter.Reset()
	t.lastTime = 0
	t.interrupts.Install(hardware.VerticalBlank, t.handler)

	t.InvokeHook(HookCtx{Domain: t, Pos: HookPosCreate})
}

// Destroy removes the vertical blank handler. The frame counter keeps its
// last value and does not advance anymore.
func (t *Timer) Destroy() {
	t.interrupts.Uninstall(hardware.VerticalBlank)

	t.InvokeHook(HookCtx{Domain: t, Pos: HookPosDestroy})
}

// Coarse returns the frame counter as a coarse timestamp. One unit is one
// frame (20 ms on PAL) and the value wraps after 65536 frames.
func (t *Timer) Coarse() uint32 {
	return uint32(t.counter.Load())
}

// Precise returns the most precise timestamp available, in beam positions.
// It returns PreciseUnavailable if the platform has no beam register.
func (t *Timer) Precise() uint32 {
	r, ok := t.Resolve()
	if !ok {
		return PreciseUnavailable
	}

	return r.Timestamp(t.geometry)
}

// Resolve samples the beam between two frame counter reads and attributes it
// to a frame. It returns false if the platform has no beam register.
func (t *Timer) Resolve() (Resolution, bool) {
	if t.beam == nil {
		return Resolution{}, false
	}

	before := t.counter.Load()
	beam := t.beam.SampleBeam()
	after := t.counter.Load()

	return Resolve(before, after, beam, t.geometry), true
}

// PreciseDomain returns the domain of the values returned by Precise.
func (t *Timer) PreciseDomain() Domain {
	return PreciseDomain(t.geometry)
}

// GameTicks returns the accumulated game ticks.
func (t *Timer) GameTicks() uint32 {
	return t.gameTicks.Load()
}

// SetPaused freezes or resumes the game tick accumulator. It takes effect at
// the next Process call.
func (t *Timer) SetPaused(paused bool) {
	t.paused.Store(paused)
}

// Paused reports whether game ticks are frozen.
func (t *Timer) Paused() bool {
	return t.paused.Load()
}

// Process advances the game ticks by the frames elapsed since the previous
// call, unless paused. It must be called exactly once per outer loop
// iteration.
func (t *Timer) Process() {
	current := t.Coarse()
	paused := t.paused.Load()

	var elapsed uint32
	if !paused {
		elapsed = CoarseDomain.Delta(t.lastTime, current)
		t.gameTicks.Add(elapsed)
	}

	// Updated while paused too, so resuming does not count the pause.
	t.lastTime = current

	if t.NumHooks() == 0 {
		return
	}

	t.InvokeHook(HookCtx{
		Domain: t,
		Pos:    HookPosAfterProcess,
		Item: Sample{
			Frame:     uint16(current),
			Coarse:    current,
			Precise:   t.Precise(),
			GameTicks: t.gameTicks.Load(),
			Elapsed:   elapsed,
			Paused:    paused,
		},
	})
}

// Peek reports whether delay game ticks have passed since *ref, without
// changing *ref.
func (t *Timer) Peek(ref *uint32, delay uint32) bool {
	return expired(*ref, delay, t.gameTicks.Load())
}

// Check is Peek that restarts the countdown from the current game ticks when
// it fires.
func (t *Timer) Check(ref *uint32, delay uint32) bool {
	now := t.gameTicks.Load()
	if !expired(*ref, delay, now) {
		return false
	}

	*ref = now

	return true
}

func expired(ref, delay, now uint32) bool {
	return ref+delay <= now
}

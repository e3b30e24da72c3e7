// Package hardware models the two pieces of display hardware the timer core
// depends on: a periodic vertical blanking interrupt and a free-running beam
// position counter.
//
// Two chips are provided. Raster is stepped explicitly and is fully
// deterministic. Realtime follows the wall clock, firing interrupts from a
// goroutine while the beam position is derived from elapsed time on the
// caller's goroutine, so the two are never read atomically together.
package hardware

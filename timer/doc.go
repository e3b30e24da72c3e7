// Package timer turns a vertical blank interrupt and a beam position register
// into clocks.
//
// A Timer exposes three notions of time:
//
//   - Coarse: the frame counter, one unit per vertical blank.
//   - Precise: the frame counter combined with the beam position, one unit per
//     beam position (0.4 us on PAL).
//   - Game ticks: a coarse-resolution accumulator that stops while paused.
//
// Every clock lives in its own wraparound Domain, and elapsed time must be
// computed with the Delta of the matching domain.
package timer

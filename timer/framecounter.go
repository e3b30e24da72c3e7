package timer

import "sync/atomic"

// FrameCounter counts vertical blank interrupts in 16 bits, wrapping
// silently. The interrupt handler is its only writer.
type FrameCounter struct {
	value atomic.Uint32
}

// Increment is the body of the vertical blank handler.
func (c *FrameCounter) Increment() {
	c.value.Add(1)
}

// Load reads the counter.
func (c *FrameCounter) Load() uint16 {
	return uint16(c.value.Load())
}

// Reset sets the counter back to zero.
func (c *FrameCounter) Reset() {
	c.value.Store(0)
}

package hardware

import (
	"log"
	"math"
	"time"
)

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
)

// Period returns the time between two consecutive ticks
func (f Freq) Period() time.Duration {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return time.Duration(float64(time.Second) / float64(f))
}

// Cycle converts a duration to the number of whole cycles that fit in it.
func (f Freq) Cycle(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}

	return uint64(math.Floor(d.Seconds() * float64(f)))
}

// CycleStart returns the offset at which the n-th cycle begins.
//
//	        n=1        n=2        n=3
//	|----------|----------|----------|----->
//	0          ^
//	           Output for n=1
func (f Freq) CycleStart(n uint64) time.Duration {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return time.Duration(math.Round(float64(n) * float64(time.Second) / float64(f)))
}

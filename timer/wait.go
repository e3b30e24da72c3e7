package timer

// Beam positions last 2/5 us.
const (
	usPerTickNum = 2
	usPerTickDen = 5
)

// MicrosecondsToTicks converts microseconds to beam positions, rounding up.
func MicrosecondsToTicks(us uint16) uint32 {
	return (uint32(us)*usPerTickDen + usPerTickNum - 1) / usPerTickNum
}

// TicksToMicroseconds converts beam positions to whole microseconds,
// rounding down.
func TicksToMicroseconds(ticks uint32) uint64 {
	return uint64(ticks) * usPerTickNum / usPerTickDen
}

// WaitMicroseconds spins until at least us microseconds have passed on the
// precise clock. It never yields and is meant for short hardware delays
// only. Without a beam register it returns immediately.
func (t *Timer) WaitMicroseconds(us uint16) {
	if !t.HasPrecise() {
		return
	}

	ticks := MicrosecondsToTicks(us)
	domain := t.PreciseDomain()
	start := t.Precise()

	for domain.Delta(start, t.Precise()) < ticks {
	}
}

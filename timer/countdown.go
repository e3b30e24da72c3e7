package timer

// GameClock is anything that reports game ticks.
type GameClock interface {
	GameTicks() uint32
}

// Countdown is a caller-owned interval measured in game ticks. It fires when
// Delay ticks have passed since Last.
type Countdown struct {
	Last  uint32
	Delay uint32
}

// NewCountdown creates a countdown that starts at the current game ticks.
func NewCountdown(c GameClock, delay uint32) Countdown {
	return Countdown{Last: c.GameTicks(), Delay: delay}
}

// Peek reports whether the countdown has expired without restarting it.
func (cd *Countdown) Peek(c GameClock) bool {
	return expired(cd.Last, cd.Delay, c.GameTicks())
}

// Check reports whether the countdown has expired and, if so, restarts it
// from the current game ticks. Time past the expiry is not carried over.
func (cd *Countdown) Check(c GameClock) bool {
	now := c.GameTicks()
	if !expired(cd.Last, cd.Delay, now) {
		return false
	}

	cd.Last = now

	return true
}

// Rearm restarts the countdown from the current game ticks.
func (cd *Countdown) Rearm(c GameClock) {
	cd.Last = c.GameTicks()
}

// Remaining returns the number of game ticks until the countdown expires, or
// zero if it already has.
func (cd *Countdown) Remaining(c GameClock) uint32 {
	now := c.GameTicks()
	if expired(cd.Last, cd.Delay, now) {
		return 0
	}

	return cd.Last + cd.Delay - now
}

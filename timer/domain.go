package timer

// A Domain is the value range of one clock. Values wrap to zero after
// Modulus-1.
type Domain struct {
	Name    string
	Modulus uint64
}

// CoarseDomain holds frame counter values.
var CoarseDomain = Domain{Name: "coarse", Modulus: 1 << 16}

// GameTickDomain holds game ticks and countdown references.
var GameTickDomain = Domain{Name: "game ticks", Modulus: 1 << 32}

// Max returns the largest value of the domain.
func (d Domain) Max() uint32 {
	return uint32(d.Modulus - 1)
}

// Delta returns the time elapsed from start to stop, assuming stop was taken
// no earlier than start and the clock wrapped at most once in between. Values
// outside the domain are reduced into it first.
func (d Domain) Delta(start, stop uint32) uint32 {
	s := uint64(start) % d.Modulus
	e := uint64(stop) % d.Modulus

	if e >= s {
		return uint32(e - s)
	}

	return uint32((uint64(d.Max()) - s) + e + 1)
}

// Delta returns the elapsed time between two 32-bit values, such as game
// ticks.
func Delta(start, stop uint32) uint32 {
	return GameTickDomain.Delta(start, stop)
}

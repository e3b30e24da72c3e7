package hardware

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should get period", func() {
		var f = 50 * Hz
		Expect(f.Period()).To(Equal(20 * time.Millisecond))
	})

	It("should panic on zero frequency", func() {
		var f Freq
		Expect(func() { f.Period() }).To(Panic())
	})

	It("should count whole cycles", func() {
		var f = 1 * KHz
		Expect(f.Cycle(2500 * time.Microsecond)).To(Equal(uint64(2)))
		Expect(f.Cycle(3 * time.Millisecond)).To(Equal(uint64(3)))
	})

	It("should count no cycles for negative durations", func() {
		var f = 1 * MHz
		Expect(f.Cycle(-time.Second)).To(Equal(uint64(0)))
	})

	It("should get the start of a cycle", func() {
		var f = 60 * Hz
		Expect(f.CycleStart(3)).To(Equal(50 * time.Millisecond))
	})
})

var _ = Describe("Geometry", func() {
	It("should give PAL a 0.4 us beam period", func() {
		Expect(PAL.UnitsPerFrame()).To(Equal(uint32(50080)))
		Expect(PAL.BeamRate().Period()).To(Equal(400 * time.Nanosecond))
	})

	It("should derive the frame timing from the beam rate", func() {
		Expect(PAL.FramePeriod()).To(Equal(20032 * time.Microsecond))
		Expect(NTSC.FramePeriod()).To(Equal(16832 * time.Microsecond))
		Expect(float64(PAL.FrameRate())).To(BeNumerically("~", 49.92, 0.001))
	})

	It("should look up standards by name", func() {
		g, ok := GeometryByName(" ntsc ")
		Expect(ok).To(BeTrue())
		Expect(g).To(Equal(NTSC))

		_, ok = GeometryByName("SECAM")
		Expect(ok).To(BeFalse())
	})

	It("should convert between units and positions", func() {
		p := PAL.PositionOf(160*12 + 7)
		Expect(p).To(Equal(BeamPosition{X: 7, Y: 12}))
		Expect(PAL.UnitsOf(p)).To(Equal(uint32(160*12 + 7)))
	})

	It("should wrap unit counts beyond one frame", func() {
		Expect(PAL.PositionOf(PAL.UnitsPerFrame() + 3)).
			To(Equal(BeamPosition{X: 3, Y: 0}))
	})
})

var _ = Describe("BeamPosition", func() {
	It("should round trip through the register", func() {
		p := BeamPosition{X: 159, Y: 312}
		Expect(DecodeBeamRegister(EncodeBeamRegister(p))).To(Equal(p))
	})

	It("should ignore bits outside the register fields", func() {
		reg := uint32(0xFFFE0000) | EncodeBeamRegister(BeamPosition{X: 1, Y: 2})
		Expect(DecodeBeamRegister(reg)).To(Equal(BeamPosition{X: 1, Y: 2}))
	})

	It("should print line then column", func() {
		Expect(BeamPosition{X: 5, Y: 42}.String()).To(Equal("042/005"))
	})
})

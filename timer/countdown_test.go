package timer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fixedClock uint32

func (c *fixedClock) GameTicks() uint32 {
	return uint32(*c)
}

var _ = Describe("Countdown", func() {
	var (
		clock fixedClock
		cd    Countdown
	)

	BeforeEach(func() {
		clock = 100
		cd = NewCountdown(&clock, 10)
	})

	It("should start at the current game ticks", func() {
		Expect(cd.Last).To(Equal(uint32(100)))
		Expect(cd.Remaining(&clock)).To(Equal(uint32(10)))
	})

	It("should peek without rearming", func() {
		clock = 110

		Expect(cd.Peek(&clock)).To(BeTrue())
		Expect(cd.Peek(&clock)).To(BeTrue())
		Expect(cd.Last).To(Equal(uint32(100)))
	})

	It("should rearm from now when checked late", func() {
		clock = 117

		Expect(cd.Check(&clock)).To(BeTrue())
		Expect(cd.Check(&clock)).To(BeFalse())
		Expect(cd.Last).To(Equal(uint32(117)))
		Expect(cd.Remaining(&clock)).To(Equal(uint32(10)))
	})

	It("should report no remaining ticks once expired", func() {
		clock = 200

		Expect(cd.Remaining(&clock)).To(BeZero())
	})

	It("should rearm on request", func() {
		clock = 105
		cd.Rearm(&clock)

		clock = 110
		Expect(cd.Peek(&clock)).To(BeFalse())
	})

	It("should agree with the timer primitives", func() {
		var ref uint32 = 100
		clock = 110

		Expect(expired(ref, 10, uint32(clock))).To(Equal(cd.Peek(&clock)))
	})
})

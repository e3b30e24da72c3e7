package timer

import (
	"time"

	"github.com/sarchlab/frameclock/hardware"
	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WaitMicroseconds", func() {
	It("should convert microseconds to ticks rounding up", func() {
		Expect(MicrosecondsToTicks(0)).To(BeZero())
		Expect(MicrosecondsToTicks(1)).To(Equal(uint32(3)))
		Expect(MicrosecondsToTicks(2)).To(Equal(uint32(5)))
		Expect(MicrosecondsToTicks(1000)).To(Equal(uint32(2500)))
		Expect(MicrosecondsToTicks(65535)).To(Equal(uint32(163838)))
	})

	It("should use the period of the beam", func() {
		tick := time.Duration(usPerTickNum) * time.Microsecond / usPerTickDen

		Expect(hardware.PAL.BeamRate().Period()).To(Equal(tick))
		Expect(hardware.NTSC.BeamRate().Period()).To(Equal(tick))
	})

	It("should convert ticks to microseconds", func() {
		Expect(TicksToMicroseconds(2500)).To(Equal(uint64(1000)))
		Expect(TicksToMicroseconds(3)).To(Equal(uint64(1)))
	})

	Context("on a stepped raster", func() {
		var (
			mockCtrl *gomock.Controller
			raster   *hardware.Raster
			beam     *MockBeamSampler
			t        *Timer
			reads    int
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			raster = hardware.NewRaster(hardware.PAL)
			beam = NewMockBeamSampler(mockCtrl)
			reads = 0

			beam.EXPECT().SampleBeam().DoAndReturn(func() hardware.BeamPosition {
				reads++
				p := raster.SampleBeam()
				raster.Step(7)
				return p
			}).AnyTimes()

			t = MakeBuilder().
				WithInterruptController(raster).
				WithBeamSampler(beam).
				Build("Timer")
			t.Create()
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should spin until the delay has passed", func() {
			t.WaitMicroseconds(100)

			Expect(reads).To(BeNumerically(">", 1))
			Expect(uint32(reads-1) * 7).To(BeNumerically(">=", MicrosecondsToTicks(100)))
		})

		It("should keep spinning across frame boundaries", func() {
			raster.Seek(hardware.BeamPosition{X: 0, Y: 312})
			start := raster.Frames()

			t.WaitMicroseconds(1000)

			Expect(raster.Frames()).To(Equal(start + 1))
			Expect(uint32(reads-1) * 7).To(BeNumerically(">=", uint32(2500)))
		})

		It("should return at once for zero microseconds", func() {
			t.WaitMicroseconds(0)

			Expect(reads).To(Equal(2))
		})
	})

	It("should return at once without beam hardware", func() {
		t := MakeBuilder().
			WithInterruptController(hardware.NewRaster(hardware.PAL)).
			Build("Timer")
		t.Create()

		t.WaitMicroseconds(60000)
	})

	Context("on a wall-clock display", func() {
		var (
			chip *hardware.Realtime
			t    *Timer
		)

		BeforeEach(func() {
			chip = hardware.NewRealtime(hardware.PAL)
			t = MakeBuilder().WithChip(chip).Build("Timer")
			t.Create()
			chip.Start()
		})

		AfterEach(func() {
			t.Destroy()
			chip.Stop()
		})

		It("should never go back in time", func() {
			domain := t.PreciseDomain()
			half := uint32(domain.Modulus / 2)

			prev := t.Precise()
			deadline := time.Now().Add(3 * hardware.PAL.FramePeriod())
			for time.Now().Before(deadline) {
				now := t.Precise()
				Expect(domain.Delta(prev, now)).To(BeNumerically("<", half))
				prev = now
			}
		})

		It("should wait at least the requested time", func() {
			// One beam period of slack for sampling granularity.
			least := 500*time.Microsecond - hardware.PAL.BeamRate().Period()

			deadline := time.Now().Add(3 * hardware.PAL.FramePeriod())
			for time.Now().Before(deadline) {
				start := time.Now()
				t.WaitMicroseconds(500)
				Expect(time.Since(start)).To(BeNumerically(">=", least))
			}
		})
	})
})

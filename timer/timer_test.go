package timer

import (
	"github.com/sarchlab/frameclock/hardware"
	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Timer", func() {
	var (
		raster *hardware.Raster
		t      *Timer
	)

	BeforeEach(func() {
		raster = hardware.NewRaster(hardware.PAL)
		t = MakeBuilder().WithChip(raster).Build("Timer")
		t.Create()
	})

	Context("lifecycle", func() {
		It("should install the vertical blank handler on create", func() {
			Expect(raster.Installed(hardware.VerticalBlank)).To(BeTrue())
		})

		It("should count frames while created", func() {
			raster.StepFrames(5)

			Expect(t.Coarse()).To(Equal(uint32(5)))
		})

		It("should keep the last value after destroy", func() {
			raster.StepFrames(3)
			t.Destroy()
			raster.StepFrames(3)

			Expect(raster.Installed(hardware.VerticalBlank)).To(BeFalse())
			Expect(t.Coarse()).To(Equal(uint32(3)))
		})

		It("should reset the counter on create", func() {
			raster.StepFrames(3)
			t.Destroy()
			t.Create()

			Expect(t.Coarse()).To(BeZero())
		})

		It("should panic without an interrupt controller", func() {
			Expect(func() { MakeBuilder().Build("Timer") }).To(Panic())
		})

		It("should wrap the coarse clock at 16 bits", func() {
			for i := 0; i < 65537; i++ {
				t.FrameCounter().Increment()
			}

			Expect(t.Coarse()).To(Equal(uint32(1)))
		})
	})

	Context("game ticks", func() {
		It("should accumulate the sum of coarse deltas", func() {
			steps := []int{1, 0, 3, 7, 2}
			total := uint32(0)

			for _, n := range steps {
				raster.StepFrames(n)
				t.Process()
				total += uint32(n)

				Expect(t.GameTicks()).To(Equal(total))
			}
		})

		It("should not depend on how often process is called", func() {
			other := hardware.NewRaster(hardware.PAL)
			sparse := MakeBuilder().WithChip(other).Build("Sparse")
			sparse.Create()

			for i := 0; i < 12; i++ {
				raster.StepFrames(1)
				other.StepFrames(1)
				t.Process()
			}
			sparse.Process()

			Expect(t.GameTicks()).To(Equal(uint32(12)))
			Expect(sparse.GameTicks()).To(Equal(uint32(12)))
		})

		It("should add nothing when called twice in a frame", func() {
			raster.StepFrames(2)
			t.Process()
			t.Process()

			Expect(t.GameTicks()).To(Equal(uint32(2)))
		})

		It("should accumulate across a frame counter wrap", func() {
			for i := 0; i < 65530; i++ {
				t.FrameCounter().Increment()
			}
			t.Process()
			Expect(t.GameTicks()).To(Equal(uint32(65530)))

			for i := 0; i < 10; i++ {
				t.FrameCounter().Increment()
			}
			t.Process()

			Expect(t.Coarse()).To(Equal(uint32(4)))
			Expect(t.GameTicks()).To(Equal(uint32(65540)))
		})

		It("should freeze while paused", func() {
			raster.StepFrames(4)
			t.Process()

			t.SetPaused(true)
			for i := 0; i < 10; i++ {
				raster.StepFrames(3)
				t.Process()
			}

			Expect(t.Paused()).To(BeTrue())
			Expect(t.GameTicks()).To(Equal(uint32(4)))
		})

		It("should not count the paused interval after resuming", func() {
			raster.StepFrames(4)
			t.Process()

			t.SetPaused(true)
			raster.StepFrames(50)
			t.Process()

			t.SetPaused(false)
			t.Process()
			Expect(t.GameTicks()).To(Equal(uint32(4)))

			raster.StepFrames(2)
			t.Process()
			Expect(t.GameTicks()).To(Equal(uint32(6)))
		})
	})

	Context("countdowns", func() {
		advance := func(frames int) {
			raster.StepFrames(frames)
			t.Process()
		}

		It("should peek without changing the reference", func() {
			ref := uint32(0)
			advance(5)

			Expect(t.Peek(&ref, 10)).To(BeFalse())
			Expect(t.Peek(&ref, 5)).To(BeTrue())
			Expect(t.Peek(&ref, 5)).To(BeTrue())
			Expect(ref).To(BeZero())
		})

		It("should give the same peek answer until game ticks move", func() {
			ref := uint32(3)
			advance(4)

			first := t.Peek(&ref, 2)
			for i := 0; i < 5; i++ {
				Expect(t.Peek(&ref, 2)).To(Equal(first))
			}

			advance(1)
			Expect(t.Peek(&ref, 2)).To(BeTrue())
		})

		It("should rearm on check", func() {
			ref := uint32(0)
			advance(7)

			Expect(t.Check(&ref, 5)).To(BeTrue())
			Expect(ref).To(Equal(uint32(7)))
			Expect(t.Check(&ref, 5)).To(BeFalse())
			Expect(ref).To(Equal(uint32(7)))
		})

		It("should not touch the reference when check does not fire", func() {
			ref := uint32(2)
			advance(3)

			Expect(t.Check(&ref, 5)).To(BeFalse())
			Expect(ref).To(Equal(uint32(2)))
		})

		It("should measure the next interval from the firing check", func() {
			ref := uint32(0)
			advance(8)
			Expect(t.Check(&ref, 5)).To(BeTrue())

			advance(4)
			Expect(t.Check(&ref, 5)).To(BeFalse())

			advance(1)
			Expect(t.Check(&ref, 5)).To(BeTrue())
			Expect(ref).To(Equal(uint32(13)))
		})

		It("should not fire while paused", func() {
			ref := uint32(0)
			t.SetPaused(true)
			advance(100)

			Expect(t.Check(&ref, 1)).To(BeFalse())
		})
	})

	Context("hooks", func() {
		var (
			mockCtrl *gomock.Controller
			hook     *MockHook
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			hook = NewMockHook(mockCtrl)
			t.AcceptHook(hook)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should report a sample after process", func() {
			raster.StepFrames(3)
			raster.Seek(hardware.BeamPosition{X: 10, Y: 150})

			hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
				Expect(ctx.Pos).To(Equal(HookPosAfterProcess))
				Expect(ctx.Domain).To(BeIdenticalTo(t))
				Expect(ctx.Item).To(Equal(Sample{
					Frame:     3,
					Coarse:    3,
					Precise:   3*50080 + 150*160 + 10,
					GameTicks: 3,
					Elapsed:   3,
				}))
			})

			t.Process()
		})

		It("should report paused samples with no elapsed time", func() {
			t.SetPaused(true)
			raster.StepFrames(2)

			hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
				s := ctx.Item.(Sample)
				Expect(s.Paused).To(BeTrue())
				Expect(s.Elapsed).To(BeZero())
				Expect(s.Coarse).To(Equal(uint32(2)))
			})

			t.Process()
		})

		It("should report create and destroy", func() {
			gomock.InOrder(
				hook.EXPECT().Func(HookCtx{Domain: t, Pos: HookPosDestroy}),
				hook.EXPECT().Func(HookCtx{Domain: t, Pos: HookPosCreate}),
			)

			t.Destroy()
			t.Create()
		})
	})
})

package datarecording

import (
	"github.com/sarchlab/frameclock/timer"
)

// SampleTable is the table that SampleHook writes to.
const SampleTable = "timer_samples"

// SampleRow is one recorded Process call.
type SampleRow struct {
	Timer     string
	Frame     uint16
	Coarse    uint32
	Precise   uint32
	GameTicks uint32
	Elapsed   uint32
	Paused    bool
}

// SampleHook records every timer sample.
type SampleHook struct {
	recorder DataRecorder
}

// NewSampleHook creates the sample table and returns a hook writing into it.
func NewSampleHook(recorder DataRecorder) *SampleHook {
	recorder.CreateTable(SampleTable, SampleRow{})

	return &SampleHook{recorder: recorder}
}

// Func records the sample of an AfterProcess hook. Other positions are
// ignored.
func (h *SampleHook) Func(ctx timer.HookCtx) {
	if ctx.Pos != timer.HookPosAfterProcess {
		return
	}

	s := ctx.Item.(timer.Sample)
	row := SampleRow{
		Frame:     s.Frame,
		Coarse:    s.Coarse,
		Precise:   s.Precise,
		GameTicks: s.GameTicks,
		Elapsed:   s.Elapsed,
		Paused:    s.Paused,
	}

	if t, ok := ctx.Domain.(*timer.Timer); ok {
		row.Timer = t.Name()
	}

	h.recorder.InsertData(SampleTable, row)
}

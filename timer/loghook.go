package timer

import (
	"log/slog"
)

// LogHook writes timer events to a structured logger. Process samples are
// logged at debug level.
type LogHook struct {
	logger *slog.Logger
}

// NewLogHook creates a LogHook. A nil logger means slog.Default.
func NewLogHook(logger *slog.Logger) *LogHook {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogHook{logger: logger}
}

// Func logs the hook context.
func (h *LogHook) Func(ctx HookCtx) {
	name := ""
	if t, ok := ctx.Domain.(*Timer); ok {
		name = t.Name()
	}

	switch ctx.Pos {
	case HookPosCreate:
		h.logger.Info("timer created", "timer", name)
	case HookPosDestroy:
		h.logger.Info("timer destroyed", "timer", name)
	case HookPosAfterProcess:
		s := ctx.Item.(Sample)
		h.logger.Debug("timer processed",
			"timer", name,
			"frame", s.Frame,
			"game_ticks", s.GameTicks,
			"elapsed", s.Elapsed,
			"paused", s.Paused,
			"precise", s.Precise,
		)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/sarchlab/frameclock/config"
	"github.com/sarchlab/frameclock/datarecording"
	"github.com/sarchlab/frameclock/hardware"
	"github.com/sarchlab/frameclock/monitoring"
	"github.com/sarchlab/frameclock/timer"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer against a wall-clock display.",
		Long: "`run` installs the timer on a display that raises a vertical " +
			"blank interrupt every frame and calls the timer once per frame " +
			"until the duration ends or the process is interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			err = applyRunFlags(cmd, &cfg)
			if err != nil {
				return err
			}

			err = setupLogging(cmd, cfg)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Duration("duration", 0, "Stop after this long, 0 runs until interrupted")
	cmd.Flags().Int("monitor-port", -1, "Serve the monitor on this port, 0 for a random port, -1 to disable")
	cmd.Flags().Bool("open-browser", false, "Open the monitor in a browser")
	cmd.Flags().String("record", "", "Record samples into this SQLite file (without extension)")
	cmd.Flags().String("clickhouse", "", "Record samples into the ClickHouse server at host:port")
	cmd.Flags().Bool("no-beam", false, "Run without the beam position register")
	cmd.Flags().Uint32("report-every", 0, "Log a report every this many game ticks")

	return cmd
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("duration") {
		cfg.Duration, _ = flags.GetDuration("duration")
	}

	if flags.Changed("monitor-port") {
		cfg.MonitorPort, _ = flags.GetInt("monitor-port")
	}

	if flags.Changed("open-browser") {
		cfg.OpenBrowser, _ = flags.GetBool("open-browser")
	}

	if flags.Changed("record") {
		cfg.RecordPath, _ = flags.GetString("record")
	}

	if flags.Changed("clickhouse") {
		cfg.ClickHouseAddr, _ = flags.GetString("clickhouse")
	}

	if flags.Changed("no-beam") {
		cfg.NoBeam, _ = flags.GetBool("no-beam")
	}

	if flags.Changed("report-every") {
		cfg.ReportEvery, _ = flags.GetUint32("report-every")
	}

	return cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	g := cfg.Geometry()
	chip := hardware.NewRealtime(g)

	builder := timer.MakeBuilder().
		WithGeometry(g).
		WithInterruptController(chip)
	if !cfg.NoBeam {
		builder = builder.WithBeamSampler(chip)
	}

	t := builder.Build("Main")
	t.AcceptHook(timer.NewLogHook(slog.Default()))

	recorders, err := openRecorders(cfg)
	if err != nil {
		return err
	}

	defer func() {
		for _, r := range recorders {
			err := r.Close()
			if err != nil {
				slog.Error("closing recording", "error", err)
			}
		}
	}()

	for _, r := range recorders {
		t.AcceptHook(datarecording.NewSampleHook(r))
	}

	t.Create()
	chip.Start()

	defer func() {
		t.Destroy()
		chip.Stop()
	}()

	var bar *monitoring.ProgressBar

	if cfg.MonitorPort >= 0 {
		m := monitoring.NewMonitor()
		if cfg.MonitorPort > 0 {
			m.WithPortNumber(cfg.MonitorPort)
		}

		m.RegisterTimer(t)

		url, err := m.StartServer()
		if err != nil {
			return err
		}

		if cfg.OpenBrowser {
			err = m.OpenBrowser(url)
			if err != nil {
				slog.Warn("cannot open browser", "url", url, "error", err)
			}
		}

		if cfg.Duration > 0 {
			bar = m.CreateProgressBar("run", uint64(cfg.Duration/g.FramePeriod()))
			defer m.CompleteProgressBar(bar)
		}
	}

	slog.Info("running",
		"standard", g.Name,
		"frame_period", g.FramePeriod(),
		"precise", t.HasPrecise(),
	)

	loop(ctx, t, cfg.ReportEvery, bar)

	slog.Info("stopped",
		"frames", chip.Frames(),
		"coarse", t.Coarse(),
		"game_ticks", t.GameTicks(),
	)

	return nil
}

// openRecorders opens the SQLite file and the ClickHouse server that the
// configuration asks for.
func openRecorders(cfg config.Config) ([]datarecording.DataRecorder, error) {
	var recorders []datarecording.DataRecorder

	if cfg.RecordPath != "" {
		w, err := datarecording.New(cfg.RecordPath)
		if err != nil {
			return nil, fmt.Errorf("recording: %w", err)
		}

		recorders = append(recorders, w)
	}

	if cfg.ClickHouseAddr != "" {
		r, err := datarecording.NewClickHouseRecorder(
			datarecording.ClickHouseOptions{
				Addr:     cfg.ClickHouseAddr,
				Database: cfg.ClickHouseDatabase,
				Username: cfg.ClickHouseUser,
				Password: cfg.ClickHousePassword,
			})
		if err != nil {
			for _, opened := range recorders {
				opened.Close()
			}

			return nil, err
		}

		recorders = append(recorders, r)
	}

	return recorders, nil
}

// loop is the outer loop. It processes the timer exactly once per iteration
// and logs a report whenever the report countdown fires.
func loop(
	ctx context.Context,
	t *timer.Timer,
	reportEvery uint32,
	bar *monitoring.ProgressBar,
) {
	ticker := time.NewTicker(t.Geometry().FramePeriod())
	defer ticker.Stop()

	report := timer.NewCountdown(t, reportEvery)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		t.Process()

		if bar != nil {
			bar.IncrementFinished(1)
		}

		if report.Check(t) {
			precise := t.Precise()
			slog.Info("report",
				"game_ticks", t.GameTicks(),
				"coarse", t.Coarse(),
				"precise", precise,
				"since_create", timer.FormatPrecise(precise),
				"paused", t.Paused(),
			)
		}
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/sarchlab/frameclock/hardware"
	"github.com/sarchlab/frameclock/timer"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure busy waits against the wall clock.",
		Long: "`bench` repeatedly spins on the precise clock of a wall-clock " +
			"display and reports how far each wait overshoots.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			us, _ := cmd.Flags().GetUint16("us")
			iterations, _ := cmd.Flags().GetInt("iterations")

			if iterations <= 0 {
				return fmt.Errorf("iterations must be positive, got %d", iterations)
			}

			result := bench(cfg.Geometry(), us, iterations)
			result.print(cmd)

			return nil
		},
	}

	cmd.Flags().Uint16("us", 500, "Microseconds to wait each time")
	cmd.Flags().Int("iterations", 20, "Number of waits")

	return cmd
}

type benchResult struct {
	us         uint16
	iterations int
	total      time.Duration
	worst      time.Duration
	early      int
}

func bench(g hardware.Geometry, us uint16, iterations int) benchResult {
	chip := hardware.NewRealtime(g)
	t := timer.MakeBuilder().WithGeometry(g).WithChip(chip).Build("Bench")

	t.Create()
	chip.Start()

	defer func() {
		t.Destroy()
		chip.Stop()
	}()

	want := time.Duration(us) * time.Microsecond
	result := benchResult{us: us, iterations: iterations}

	for i := 0; i < iterations; i++ {
		start := time.Now()
		t.WaitMicroseconds(us)
		over := time.Since(start) - want

		if over < 0 {
			result.early++
			continue
		}

		result.total += over
		if over > result.worst {
			result.worst = over
		}
	}

	return result
}

func (r benchResult) print(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	mean := time.Duration(0)
	if n := r.iterations - r.early; n > 0 {
		mean = r.total / time.Duration(n)
	}

	fmt.Fprintf(out, "waits:           %d x %d us\n", r.iterations, r.us)
	fmt.Fprintf(out, "mean overshoot:  %s\n", mean)
	fmt.Fprintf(out, "worst overshoot: %s\n", r.worst)
	fmt.Fprintf(out, "early returns:   %d\n", r.early)
}

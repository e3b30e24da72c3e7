package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sarchlab/frameclock/datarecording"
	"github.com/sarchlab/frameclock/timer"
	"github.com/spf13/cobra"
)

func newSamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples FILE",
		Short: "Print the samples of a recording.",
		Long: "`samples` reads a SQLite file written by `run --record` and " +
			"prints one page of timer samples, or a summary per timer.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			if summary, _ := cmd.Flags().GetBool("summary"); summary {
				return printSummary(cmd, reader)
			}

			q := datarecording.SampleQuery{}
			q.Timer, _ = cmd.Flags().GetString("timer")
			q.PausedOnly, _ = cmd.Flags().GetBool("paused")
			q.Limit, _ = cmd.Flags().GetInt("limit")
			q.Offset, _ = cmd.Flags().GetInt("offset")

			return printSamples(cmd, reader, q)
		},
	}

	cmd.Flags().String("timer", "", "Only show the samples of this timer")
	cmd.Flags().Bool("paused", false, "Only show samples taken while paused")
	cmd.Flags().Int("limit", 20, "Samples per page, 0 for all")
	cmd.Flags().Int("offset", 0, "Samples to skip")
	cmd.Flags().Bool("summary", false, "Print one line per timer instead")

	return cmd
}

func printSamples(
	cmd *cobra.Command,
	reader *datarecording.SQLiteReader,
	q datarecording.SampleQuery,
) error {
	samples, total, err := reader.Samples(cmd.Context(), q)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMER\tFRAME\tPRECISE\tGAME TICKS\tELAPSED\tPAUSED")

	for _, s := range samples {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%t\n",
			s.Timer, s.Frame, timer.FormatPrecise(s.Precise),
			s.GameTicks, s.Elapsed, s.Paused)
	}

	err = w.Flush()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d samples\n", len(samples), total)

	return nil
}

func printSummary(cmd *cobra.Command, reader *datarecording.SQLiteReader) error {
	summaries, err := reader.Summarize(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMER\tSAMPLES\tPAUSED\tFRAMES\tGAME TICKS")

	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			s.Timer, s.Samples, s.Paused, s.Frames, s.GameTicks)
	}

	return w.Flush()
}

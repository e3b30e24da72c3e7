package main

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/frameclock/timer"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format TICKS...",
		Short: "Print precise durations in human readable form.",
		Long: "`format` prints each precise duration, given in beam positions " +
			"of 0.4 us, scaled to us, ms or s.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				ticks, err := strconv.ParseUint(arg, 0, 32)
				if err != nil {
					return fmt.Errorf("parsing %q: %w", arg, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n",
					arg, timer.FormatPrecise(uint32(ticks)))
			}

			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/frameclock/config"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "frameclock",
		Short: "Frameclock runs the frame timer against a simulated display.",
		Long: `Frameclock runs the frame timer against a simulated display. ` +
			`It counts vertical blank interrupts, derives precise time from ` +
			`the beam position and accumulates pausable game ticks.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("env-file", ".env",
		"Read settings from this file if it exists")
	root.PersistentFlags().String("log-level", "",
		"Log level: debug, info, warn or error")
	root.PersistentFlags().String("standard", "",
		"Video standard: PAL or NTSC")

	root.AddCommand(newRunCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newSamplesCmd())

	return root
}

// loadConfig reads the configuration and applies the persistent flags that
// were set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	if cmd.Flags().Changed("standard") {
		cfg.Standard, _ = cmd.Flags().GetString("standard")
	}

	return cfg, cfg.Validate()
}

func setupLogging(cmd *cobra.Command, cfg config.Config) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	InitLogger(cmd.ErrOrStderr(), level)

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Functions registered with atexit run before the process
// ends.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

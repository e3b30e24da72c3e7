// Package config loads the settings of the frameclock command from the
// environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sarchlab/frameclock/hardware"
)

// Environment variables read by Load.
const (
	EnvStandard    = "FRAMECLOCK_STANDARD"
	EnvDuration    = "FRAMECLOCK_DURATION"
	EnvMonitorPort = "FRAMECLOCK_MONITOR_PORT"
	EnvOpenBrowser = "FRAMECLOCK_OPEN_BROWSER"
	EnvRecordPath  = "FRAMECLOCK_RECORD"
	EnvLogLevel    = "FRAMECLOCK_LOG_LEVEL"
	EnvNoBeam      = "FRAMECLOCK_NO_BEAM"
	EnvReportEvery = "FRAMECLOCK_REPORT_EVERY"

	EnvClickHouseAddr     = "FRAMECLOCK_CLICKHOUSE_ADDR"
	EnvClickHouseDatabase = "FRAMECLOCK_CLICKHOUSE_DATABASE"
	EnvClickHouseUser     = "FRAMECLOCK_CLICKHOUSE_USER"
	EnvClickHousePassword = "FRAMECLOCK_CLICKHOUSE_PASSWORD"
)

var (
	// ErrUnknownStandard is returned for video standards other than PAL and
	// NTSC.
	ErrUnknownStandard = errors.New("unknown video standard")

	// ErrInvalidLevel is returned for log levels slog cannot parse.
	ErrInvalidLevel = errors.New("invalid log level")
)

// Config holds the settings of one run.
type Config struct {
	// Standard is the video standard, PAL or NTSC.
	Standard string

	// Duration bounds the run. Zero runs until interrupted.
	Duration time.Duration

	// MonitorPort enables the HTTP monitor when not negative. Zero picks a
	// random port.
	MonitorPort int
	OpenBrowser bool

	// RecordPath enables sample recording into RecordPath + ".sqlite3".
	RecordPath string

	LogLevel string

	// NoBeam runs without the beam position register.
	NoBeam bool

	// ReportEvery is the countdown, in game ticks, between two reports.
	ReportEvery uint32

	// ClickHouseAddr enables sample recording into a ClickHouse server at
	// host:port.
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Standard:    hardware.PAL.Name,
		MonitorPort: -1,
		LogLevel:    "info",
		ReportEvery: 50,

		ClickHouseDatabase: "default",
		ClickHouseUser:     "default",
	}
}

// Load reads the given .env files, if any exist, and then the FRAMECLOCK_*
// variables on top of the defaults. Variables already set in the process
// environment win over the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	c := Default()

	if v, ok := os.LookupEnv(EnvStandard); ok {
		c.Standard = v
	}

	if v, ok := os.LookupEnv(EnvRecordPath); ok {
		c.RecordPath = v
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}

	lookupString(EnvClickHouseAddr, &c.ClickHouseAddr)
	lookupString(EnvClickHouseDatabase, &c.ClickHouseDatabase)
	lookupString(EnvClickHouseUser, &c.ClickHouseUser)
	lookupString(EnvClickHousePassword, &c.ClickHousePassword)

	var err error

	if v, ok := os.LookupEnv(EnvDuration); ok {
		c.Duration, err = time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDuration, err)
		}
	}

	if v, ok := os.LookupEnv(EnvMonitorPort); ok {
		c.MonitorPort, err = strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMonitorPort, err)
		}
	}

	if v, ok := os.LookupEnv(EnvOpenBrowser); ok {
		c.OpenBrowser, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvOpenBrowser, err)
		}
	}

	if v, ok := os.LookupEnv(EnvNoBeam); ok {
		c.NoBeam, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvNoBeam, err)
		}
	}

	if v, ok := os.LookupEnv(EnvReportEvery); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvReportEvery, err)
		}

		c.ReportEvery = uint32(n)
	}

	return c, c.Validate()
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if _, ok := hardware.GeometryByName(c.Standard); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStandard, c.Standard)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.Duration < 0 {
		return fmt.Errorf("negative duration %s", c.Duration)
	}

	if c.ReportEvery == 0 {
		return errors.New("report interval must be at least one tick")
	}

	if c.ClickHouseAddr != "" && c.ClickHouseDatabase == "" {
		return errors.New("ClickHouse recording needs a database")
	}

	return nil
}

// Geometry returns the geometry of the configured standard.
func (c Config) Geometry() hardware.Geometry {
	g, ok := hardware.GeometryByName(c.Standard)
	if !ok {
		return hardware.PAL
	}

	return g
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, c.LogLevel)
	}

	return level, nil
}

package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ja7ad/energy/pkg/config"
	"github.com/ja7ad/energy/pkg/consumption"
)

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "energy",
		Short: "Scenario-based energy, cost and CO₂ estimation",
		Long: `The energy tool models a relative load λ(t) for a scenario (normal, peak,
savings), converts it into power P(t) between an idle and a maximum draw,
and integrates P(t) over [a,b] hours with the composite trapezoidal or
Simpson rule. Energy is reported in Wh and kWh, together with cost (when a
tariff is given) and CO₂ mass.

* GitHub: https://github.com/ja7ad/energy

Examples:
  energy compute --scenario normal --a 0 --b 1 --n 1000 --idle 120 --max 320 --base 0.5 --amplitude 0.3
  energy compute --scenario peak --example --k 25 --tariff 0.2 --csv out.csv
  energy compute --input job.yaml --json out.json --html out.html
  energy scenarios`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "settings file (YAML); defaults to $ENERGY_CONFIG")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides settings)")

	root.AddCommand(newComputeCmd(), newScenariosCmd())

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// setupLogger installs a text slog handler on stderr at the given level.
// Unknown levels fall back to info.
func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// newEngine resolves settings, configures logging and builds the engine.
func newEngine() (*consumption.Engine, error) {
	settings, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}
	level := settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	setupLogger(level)

	cc, err := settings.Consumption()
	if err != nil {
		return nil, err
	}
	if settings.Path != "" {
		slog.Debug("settings loaded", "path", settings.Path)
	}
	slog.Debug("engine config",
		"emission_factor", cc.EmissionFactor,
		"emission_policy", cc.EmissionPolicy,
		"peak_shape", cc.PeakShape,
		"coefficients", cc.Coefficients,
		"max_steps", cc.MaxSteps,
	)
	return consumption.New(&cc), nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ja7ad/energy/pkg/consumption"
	"github.com/ja7ad/energy/pkg/load"
)

type opts struct {
	// model inputs, copied into consumption.Input only when the flag was set
	scenario       string
	method         string
	a, b, n        float64
	idle, max      float64
	base, amp      float64
	k, t0          float64
	limit          float64
	tariff         float64
	emissionFactor float64

	inputPath string
	example   bool

	// outputs
	points   int
	pretty   bool
	csvPath  string
	jsonPath string
	htmlPath string
}

func newComputeCmd() *cobra.Command {
	var o opts

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Integrate the scenario power curve and report energy, cost and CO₂",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			in, err := collectInput(cmd, o)
			if err != nil {
				return err
			}
			return run(cmd.Context(), eng, o, in, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.scenario, "scenario", "", "scenario: normal, peak or savings")
	f.StringVar(&o.method, "method", "", "integration rule: trapezoidal or simpson (default: recommended for the scenario)")
	f.Float64Var(&o.a, "a", 0, "lower bound in hours")
	f.Float64Var(&o.b, "b", 0, "upper bound in hours")
	f.Float64Var(&o.n, "n", 0, "number of subintervals (positive integer, even for simpson)")
	f.Float64Var(&o.idle, "idle", 0, "idle power in Watts")
	f.Float64Var(&o.max, "max", 0, "max power in Watts at λ=1")
	f.Float64Var(&o.base, "base", 0, "load base in [0,1]")
	f.Float64Var(&o.amp, "amplitude", 0, "load amplitude in [0,1]")
	f.Float64Var(&o.k, "k", 0, "peak steepness (> 0, peak only)")
	f.Float64Var(&o.t0, "t0", 0, "peak center in hours (peak only, default (a+b)/2)")
	f.Float64Var(&o.limit, "limit", 0, "power ceiling in Watts (savings only)")
	f.Float64Var(&o.tariff, "tariff", 0, "tariff per kWh; cost is omitted when unset")
	f.Float64Var(&o.emissionFactor, "emission-factor", 0, "kg CO₂ per kWh (default from settings)")

	f.StringVar(&o.inputPath, "input", "", "read inputs from a YAML/JSON file; flags override file values")
	f.BoolVar(&o.example, "example", false, "fill unset inputs with example values for the scenario")

	f.IntVar(&o.points, "points", 10, "number of intervals in the printed power profile")
	f.BoolVar(&o.pretty, "pretty", true, "format output as a table instead of CSV-like lines")
	f.StringVar(&o.csvPath, "csv", "", "write the power profile to a CSV file")
	f.StringVar(&o.jsonPath, "json", "", "write the result and profile to a JSON file")
	f.StringVar(&o.htmlPath, "html", "", "write the result and profile to an HTML file")

	return cmd
}

// collectInput merges the input file, the flags that were explicitly set and,
// with --example, the example values for the scenario, in that order of
// precedence (flags first).
func collectInput(cmd *cobra.Command, o opts) (consumption.Input, error) {
	var in consumption.Input
	if o.inputPath != "" {
		data, err := os.ReadFile(o.inputPath)
		if err != nil {
			return in, fmt.Errorf("read input: %w", err)
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("parse input %s: %w", o.inputPath, err)
		}
		slog.Debug("input file loaded", "path", o.inputPath)
	}

	f := cmd.Flags()
	if f.Changed("scenario") {
		in.Scenario = o.scenario
	}
	if f.Changed("method") {
		in.Method = o.method
	}
	set := func(name string, dst **float64, v float64) {
		if f.Changed(name) {
			*dst = consumption.Float(v)
		}
	}
	set("a", &in.A, o.a)
	set("b", &in.B, o.b)
	set("n", &in.N, o.n)
	set("idle", &in.IdlePower, o.idle)
	set("max", &in.MaxPower, o.max)
	set("base", &in.Base, o.base)
	set("amplitude", &in.Amplitude, o.amp)
	set("k", &in.K, o.k)
	set("t0", &in.T0, o.t0)
	set("limit", &in.SavingsLimit, o.limit)
	set("tariff", &in.TariffRate, o.tariff)
	set("emission-factor", &in.EmissionFactor, o.emissionFactor)

	if o.example {
		if err := fillExample(&in); err != nil {
			return in, err
		}
	}
	return in, nil
}

// run resolves the method default, drops inapplicable inputs, computes and
// renders the result to w and to any requested files.
func run(ctx context.Context, eng *consumption.Engine, o opts, in consumption.Input, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s, err := load.ParseScenario(in.Scenario); err == nil {
		if in.Method == "" {
			in.Method = string(consumption.RecommendedMethod(s))
			slog.Info("using recommended method", "scenario", s, "method", in.Method)
		}
		in = dropInapplicable(eng, s, in)
	}

	req, err := eng.Validate(in)
	if err != nil {
		return err
	}
	res, err := req.Evaluate()
	if err != nil {
		return err
	}
	samples := req.Profile(o.points)

	slog.Debug("computed",
		"scenario", res.Scenario,
		"method", res.Method,
		"n", req.N,
		"energy_wh", res.EnergyWh,
	)

	if o.pretty {
		printTable(w, samples)
	} else {
		printCsvLike(w, samples)
	}
	printSummary(w, req, res)

	if o.csvPath != "" {
		if err := writeFile(o.csvPath, func(f io.Writer) error { return writeCSV(f, samples) }); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeFile(o.jsonPath, func(f io.Writer) error { return writeJSON(f, res, samples) }); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeFile(o.htmlPath, func(f io.Writer) error { return writeHTML(f, req, res, samples) }); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	return nil
}

// dropInapplicable clears inputs the scenario does not read, with a warning.
func dropInapplicable(eng *consumption.Engine, s load.Scenario, in consumption.Input) consumption.Input {
	optional := []struct {
		field consumption.Field
		v     **float64
	}{
		{consumption.FieldBase, &in.Base},
		{consumption.FieldAmplitude, &in.Amplitude},
		{consumption.FieldK, &in.K},
		{consumption.FieldT0, &in.T0},
		{consumption.FieldSavingsLimit, &in.SavingsLimit},
		{consumption.FieldEmissionFactor, &in.EmissionFactor},
	}
	for _, opt := range optional {
		if *opt.v != nil && !eng.Applicable(s, opt.field) {
			slog.Warn("ignoring input not used by scenario", "scenario", s, "field", opt.field)
			*opt.v = nil
		}
	}
	return in
}

var examples = map[load.Scenario]consumption.Input{
	load.Normal: {
		A: consumption.Float(0), B: consumption.Float(1), N: consumption.Float(1000),
		IdlePower: consumption.Float(120), MaxPower: consumption.Float(320),
		Base: consumption.Float(0.5), Amplitude: consumption.Float(0.3),
	},
	load.Peak: {
		A: consumption.Float(0), B: consumption.Float(1), N: consumption.Float(1000),
		IdlePower: consumption.Float(120), MaxPower: consumption.Float(320),
		Base: consumption.Float(0.2), Amplitude: consumption.Float(0.7),
		K: consumption.Float(10),
	},
	load.Savings: {
		A: consumption.Float(0), B: consumption.Float(1), N: consumption.Float(1000),
		IdlePower: consumption.Float(120), MaxPower: consumption.Float(320),
		Base: consumption.Float(0.5), Amplitude: consumption.Float(0.3),
		SavingsLimit: consumption.Float(200),
	},
}

// fillExample sets every unset field to the example value of the scenario.
// With no scenario, the normal example is used.
func fillExample(in *consumption.Input) error {
	if in.Scenario == "" {
		in.Scenario = string(load.Normal)
	}
	s, err := load.ParseScenario(in.Scenario)
	if err != nil {
		return err
	}
	ex := examples[s]
	fill := func(dst **float64, v *float64) {
		if *dst == nil && v != nil {
			*dst = consumption.Float(*v)
		}
	}
	fill(&in.A, ex.A)
	fill(&in.B, ex.B)
	fill(&in.N, ex.N)
	fill(&in.IdlePower, ex.IdlePower)
	fill(&in.MaxPower, ex.MaxPower)
	fill(&in.Base, ex.Base)
	fill(&in.Amplitude, ex.Amplitude)
	fill(&in.K, ex.K)
	fill(&in.T0, ex.T0)
	fill(&in.SavingsLimit, ex.SavingsLimit)
	return nil
}

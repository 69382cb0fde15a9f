package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/energy/pkg/consumption"
	"github.com/ja7ad/energy/pkg/load"
)

func execCompute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENERGY_CONFIG", "")
	var out bytes.Buffer
	cmd := newComputeCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompute_NormalFlags(t *testing.T) {
	out, err := execCompute(t,
		"--scenario", "normal", "--method", "simpson",
		"--a", "0", "--b", "1", "--n", "1000",
		"--idle", "120", "--max", "320", "--base", "0.5", "--amplitude", "0.3",
		"--points", "4",
	)
	require.NoError(t, err)
	t.Log(out)

	assert.Contains(t, out, "258.197 Wh")
	assert.Contains(t, out, "0.258197 kWh")
	assert.Contains(t, out, "- cost:    —")
	assert.Contains(t, out, "λ(t) = clamp01(0.5 + 0.3·sin(π·t))")
}

func TestCompute_ExampleUsesRecommendedMethod(t *testing.T) {
	out, err := execCompute(t, "--scenario", "savings", "--example", "--tariff", "0.2", "--pretty=false")
	require.NoError(t, err)

	assert.Contains(t, out, "savings, trapezoidal")
	assert.Contains(t, out, "P(t) = min(200, P_normal(t))")
	assert.Contains(t, out, "# t_h, load, power_w, e_cum_wh")
	assert.NotContains(t, out, "- cost:    —")
}

func TestCompute_RejectsOddSimpson(t *testing.T) {
	_, err := execCompute(t, "--scenario", "peak", "--example", "--method", "simpson", "--n", "999")
	require.ErrorIs(t, err, consumption.ErrOddStepCountForSimpson)
}

func TestCompute_RejectsMissingField(t *testing.T) {
	_, err := execCompute(t, "--scenario", "normal", "--a", "0", "--b", "1")
	require.ErrorIs(t, err, consumption.ErrMissingRequiredField)
}

func TestCompute_InputFileAndOutputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`
scenario: peak
method: simpson
a: 0
b: 2
n: 200
idle_power: 100
max_power: 400
base: 0.1
amplitude: 0.8
k: 5
tariff_rate: 0.3
`), 0o600))

	csvPath := filepath.Join(dir, "out", "profile.csv")
	jsonPath := filepath.Join(dir, "out", "report.json")
	htmlPath := filepath.Join(dir, "out", "report.html")

	// --n on the command line beats the file
	_, err := execCompute(t, "--input", input, "--n", "400", "--points", "8",
		"--csv", csvPath, "--json", jsonPath, "--html", htmlPath)
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 10) // header + 9 samples
	assert.Equal(t, []string{"t_h", "load", "power_w", "e_cum_wh"}, rows[0])

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, load.Peak, rep.Result.Scenario)
	require.NotNil(t, rep.Result.Cost)
	assert.Len(t, rep.Profile, 9)
	assert.Contains(t, rep.Result.Trace, "E ≈ (h/3)·[P(a) + P(b) + 4·Σodd P(a+i·h) + 2·Σeven P(a+i·h)], h = 0.005, n = 400")

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Energy Report</h1>")
	assert.Contains(t, string(html), "Scenario: peak")
}

func TestDropInapplicable(t *testing.T) {
	eng := consumption.New(nil)
	in := consumption.Input{
		K:            consumption.Float(10),
		T0:           consumption.Float(0.5),
		SavingsLimit: consumption.Float(200),
		Base:         consumption.Float(0.5),
	}

	got := dropInapplicable(eng, load.Normal, in)
	assert.Nil(t, got.K)
	assert.Nil(t, got.T0)
	assert.Nil(t, got.SavingsLimit)
	assert.NotNil(t, got.Base)

	got = dropInapplicable(eng, load.Peak, in)
	assert.NotNil(t, got.K)
	assert.Nil(t, got.SavingsLimit)
}

func TestFillExample_KeepsExplicitValues(t *testing.T) {
	in := consumption.Input{Scenario: "pico", N: consumption.Float(10)}
	require.NoError(t, fillExample(&in))
	assert.Equal(t, 10.0, *in.N)
	require.NotNil(t, in.K)
	assert.Nil(t, in.T0, "t0 is left to the midpoint default")

	in = consumption.Input{}
	require.NoError(t, fillExample(&in))
	assert.Equal(t, "normal", in.Scenario)

	in = consumption.Input{Scenario: "turbo"}
	require.ErrorIs(t, fillExample(&in), load.ErrUnknownScenario)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, consumption.New(nil), opts{}, consumption.Input{}, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPrintScenarios(t *testing.T) {
	var buf bytes.Buffer
	printScenarios(&buf, consumption.New(nil))
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "normal")
	assert.Contains(t, lines[2], "simpson")
	assert.Contains(t, lines[3], "peak")
	assert.Contains(t, lines[3], "t0")
	assert.Contains(t, lines[4], "savings")
	assert.Contains(t, lines[4], "trapezoidal")
	assert.Contains(t, lines[4], "savings_limit")
}

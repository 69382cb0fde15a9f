package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ja7ad/energy/pkg/consumption"
	"github.com/ja7ad/energy/pkg/types"
	"github.com/ja7ad/energy/pkg/util"
)

// printer groups thousands in the human-readable summary.
var printer = message.NewPrinter(language.English)

func printTable(w io.Writer, samples []consumption.Sample) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "t (h)\tλ(t)\tP (W)\tE_cum (Wh)")
	fmt.Fprintln(tw, "-----\t----\t-----\t----------")
	for _, s := range samples {
		// fixed decimals; aligned by tabs
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.3f\t%.3f\n", s.T, s.Load, s.Power, s.EnergyWh)
	}
	tw.Flush()
}

func printCsvLike(w io.Writer, samples []consumption.Sample) {
	fmt.Fprintln(w, "# t_h, load, power_w, e_cum_wh")
	for _, s := range samples {
		fmt.Fprintf(w, "%.4f, %.4f, %.3f, %.3f\n", s.T, s.Load, s.Power, s.EnergyWh)
	}
}

func printSummary(w io.Writer, req consumption.Request, res consumption.Result) {
	e := types.WattHours(res.EnergyWh)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "energy (%s, %s, n=%d over [%s, %s] h):\n",
		res.Scenario, res.Method, req.N, util.FmtFloat(req.A), util.FmtFloat(req.B))
	fmt.Fprintf(w, "- energy:  %s Wh (%s)\n", printer.Sprintf("%.3f", res.EnergyWh), e.Humanized())
	fmt.Fprintf(w, "- energy:  %s kWh\n", printer.Sprintf("%.6f", res.EnergyKWh))
	if res.Cost != nil {
		fmt.Fprintf(w, "- cost:    %s\n", printer.Sprintf("%.4f", *res.Cost))
	} else {
		fmt.Fprintln(w, "- cost:    —")
	}
	fmt.Fprintf(w, "- co2:     %s kg (%s kg/kWh)\n", printer.Sprintf("%.4f", res.CO2Kg), util.FmtFloat(res.EmissionFactor))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "formulas:")
	for _, line := range res.Trace {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// writeFile creates path (and its directory) and hands it to fn.
func writeFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(w io.Writer, samples []consumption.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t_h", "load", "power_w", "e_cum_wh"}); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write([]string{
			util.FmtFloat(s.T), util.FmtFloat(s.Load),
			util.FmtFloat(s.Power), util.FmtFloat(s.EnergyWh),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type report struct {
	Result  consumption.Result   `json:"result"`
	Profile []consumption.Sample `json:"profile"`
}

func writeJSON(w io.Writer, res consumption.Result, samples []consumption.Sample) error {
	b, err := json.MarshalIndent(report{Result: res, Profile: samples}, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func writeHTML(w io.Writer, req consumption.Request, res consumption.Result, samples []consumption.Sample) error {
	type view struct {
		Req     consumption.Request
		Res     consumption.Result
		Human   string
		Cost    string
		Samples []consumption.Sample
	}

	var buf bytes.Buffer
	data := view{
		Req:     req,
		Res:     res,
		Human:   types.WattHours(res.EnergyWh).Humanized(),
		Cost:    "—",
		Samples: samples,
	}
	if res.Cost != nil {
		data.Cost = fmt.Sprintf("%.4f", *res.Cost)
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Energy Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
code{background:#f5f5f5;padding:2px 4px;border-radius:4px}
.small{color:#555}
</style>

<h1>Energy Report</h1>

<p class="small">
Scenario: {{.Res.Scenario}} &nbsp;|&nbsp;
Method: {{.Res.Method}} (n = {{.Req.N}}) &nbsp;|&nbsp;
Interval: [{{.Req.A}}, {{.Req.B}}] h
</p>

<h2>Summary</h2>
<ul>
<li>Energy: {{printf "%.3f" .Res.EnergyWh}} Wh ({{.Human}})</li>
<li>Energy: {{printf "%.6f" .Res.EnergyKWh}} kWh</li>
<li>Cost: {{.Cost}}</li>
<li>CO₂: {{printf "%.4f" .Res.CO2Kg}} kg ({{.Res.EmissionFactor}} kg/kWh)</li>
</ul>

<h2>Formulas</h2>
<ul>
{{range .Res.Trace}}
  <li><code>{{.}}</code></li>
{{end}}
</ul>

<h2>Profile</h2>
<table>
<thead>
<tr><th>t (h)</th><th>λ(t)</th><th>P (W)</th><th>E_cum (Wh)</th></tr>
</thead>
<tbody>
{{range .Samples}}
<tr>
<td>{{printf "%.4f" .T}}</td>
<td>{{printf "%.4f" .Load}}</td>
<td>{{printf "%.3f" .Power}}</td>
<td>{{printf "%.3f" .EnergyWh}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))

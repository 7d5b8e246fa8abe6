// SPDX-License-Identifier: MIT
package commands

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/scanstat/scan"
)

// Output formats.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// maxSimulatedRows caps the simulated table in text output; YAML is complete.
const maxSimulatedRows = 20

// report is the YAML document written by --format yaml.
type report struct {
	Seed       string     `yaml:"seed"`
	NullModel  string     `yaml:"null_model"`
	Periods    int        `yaml:"periods"`
	Locations  int        `yaml:"locations"`
	Zones      int        `yaml:"zones"`
	Replicates int        `yaml:"replicates"`
	Windows    int        `yaml:"windows"`
	Degenerate int        `yaml:"degenerate"`
	Elapsed    string     `yaml:"elapsed"`
	PValue     *float64   `yaml:"p_value,omitempty"`
	Observed   []scan.Row `yaml:"observed"`
	Simulated  []scan.Row `yaml:"simulated"`
}

func render(w io.Writer, out *scan.Output, format string) error {
	switch format {
	case FormatTable:
		return renderText(w, out)
	case FormatYAML:
		return renderYAML(w, out)
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownFormat, format, FormatTable, FormatYAML)
	}
}

func renderYAML(w io.Writer, out *scan.Output) error {
	rep := report{
		Seed:       strconv.FormatUint(out.Seed, 10),
		NullModel:  out.Stats.NullModel.String(),
		Periods:    out.Stats.Periods,
		Locations:  out.Stats.Locations,
		Zones:      out.Stats.Zones,
		Replicates: out.Stats.Replicates,
		Windows:    out.Stats.Windows,
		Degenerate: out.Stats.Degenerate,
		Elapsed:    out.Stats.Elapsed.String(),
		Observed:   out.Observed.Rows,
		Simulated:  out.Simulated.Rows,
	}
	if p := out.PValue(); !math.IsNaN(p) {
		rep.PValue = &p
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}

func renderText(w io.Writer, out *scan.Output) error {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintln(w, "Observed")
	fmt.Fprintln(w, rowsTable(out.Observed.Rows, 0))

	if out.Simulated.Len() > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Simulated")
		fmt.Fprintln(w, rowsTable(out.Simulated.Rows, maxSimulatedRows))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summary(out))
	if p := out.PValue(); !math.IsNaN(p) {
		c := color.New(color.FgYellow)
		if p <= 0.05 {
			c = color.New(color.FgGreen, color.Bold)
		}
		c.Fprintf(w, "Monte Carlo p-value: %.4g\n", p)
	}

	return nil
}

// rowsTable renders rows; limit > 0 truncates with a footer.
func rowsTable(rows []scan.Row, limit int) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault

	header := make(table.Row, len(scan.Columns))
	for i, c := range scan.Columns {
		header[i] = c
	}
	tbl.AppendHeader(header)

	shown := rows
	if limit > 0 && len(rows) > limit {
		shown = rows[:limit]
	}
	for _, r := range shown {
		tbl.AppendRow(table.Row{r.Zone, r.Duration, formatFloat(r.Score), formatFloat(r.RelRiskIn), formatFloat(r.RelRiskOut)})
	}
	if len(shown) < len(rows) {
		tbl.AppendFooter(table.Row{fmt.Sprintf("%s more rows", humanize.Comma(int64(len(rows)-len(shown))))})
	}

	return tbl.Render()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}

	return strconv.FormatFloat(v, 'f', 6, 64)
}

func summary(out *scan.Output) string {
	st := out.Stats

	return fmt.Sprintf("%s windows (%s degenerate) over %s zones x %d periods, %s replicates, %s null model, seed %d, %s",
		humanize.Comma(int64(st.Windows)),
		humanize.Comma(int64(st.Degenerate)),
		humanize.Comma(int64(st.Zones)),
		st.Periods,
		humanize.Comma(int64(st.Replicates)),
		st.NullModel,
		out.Seed,
		st.Elapsed.Round(time.Millisecond),
	)
}

// SPDX-License-Identifier: MIT

// Package commands implements the scanstat CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/scanstat/config"
	"github.com/katalvlaran/scanstat/scan"
)

// RunCommand holds the flags of the run command.
type RunCommand struct {
	configPath   string
	format       string
	printMetrics bool
	noColor      bool
	zones        zoneSpec

	v *viper.Viper
}

// flagKeys binds CLI flags to configuration keys; a flag set on the
// command line wins over environment and file.
var flagKeys = map[string]string{
	"mcsim":            "scan.num_mcsim",
	"seed":             "scan.seed",
	"store-everything": "scan.store_everything",
	"workers":          "scan.workers",
	"null-model":       "scan.null_model",
	"max-rows":         "scan.max_result_rows",
	"max-cases":        "scan.max_cases",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{v: config.New()}

	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Scan an input file",
		Long: `Scan a YAML or JSON document with keys counts, baselines, zones and
zone_lengths ("-" reads standard input). Counts and baselines are
period x location matrices, row 0 being the most recent period.

Instead of listing zones, a document may give coordinates (and edges)
and let --knn (and --flexible) generate them.`,
		Args: cobra.ExactArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file (default ./scanstat.yaml or $HOME/.scanstat/scanstat.yaml)")
	cmd.Flags().StringVar(&rc.format, "format", FormatTable, "Output format: table, yaml")
	cmd.Flags().BoolVar(&rc.printMetrics, "print-metrics", false, "Print Prometheus metrics of the run in text format")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().IntVar(&rc.zones.knn, "knn", 0, "Generate zones from coordinates: each location with its k-1 nearest neighbours")
	cmd.Flags().BoolVar(&rc.zones.flexible, "flexible", false, "With --knn, generate every connected subset of the k nearest (needs edges)")

	cmd.Flags().Int("mcsim", scan.DefaultNumMCSim, "Number of Monte Carlo replicates")
	cmd.Flags().String("seed", "", "Replicate seed (empty = random, reported in the output)")
	cmd.Flags().Bool("store-everything", false, "Keep every evaluated window instead of the maximum per dataset")
	cmd.Flags().Int("workers", 0, "Number of parallel workers (0 = use CPU count)")
	cmd.Flags().String("null-model", scan.DefaultNullModel.String(), "Replicate null model: row-uniform, row-baseline, space-time")
	cmd.Flags().Int("max-rows", scan.DefaultMaxResultRows, "Most result rows a run may hold")
	cmd.Flags().Int64("max-cases", scan.DefaultMaxCases, "Most cases the space-time null model may relabel")
	cmd.Flags().String("log-level", "warn", "Log level: debug, info, warn, error")
	cmd.Flags().String("log-format", config.FormatConsole, "Log format: console, json")

	for flag, key := range flagKeys {
		if err := rc.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	if rc.noColor {
		color.NoColor = true //nolint:reassign // library global
	}
	if rc.format != FormatTable && rc.format != FormatYAML {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, rc.format)
	}

	if err := config.Read(rc.v, rc.configPath); err != nil {
		return err
	}
	cfg, err := config.Decode(rc.v)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts, err := cfg.Scan.Options()
	if err != nil {
		return err
	}

	in, err := readInput(args[0], cmd.InOrStdin(), rc.zones)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := scan.NewMetrics(reg)
	if err != nil {
		return err
	}
	opts = append(opts, scan.WithLogger(log), scan.WithMetrics(metrics))

	log.Debug("running scan", zap.String("input", args[0]), zap.String("format", rc.format))
	out, scanErr := scan.Scan(cmd.Context(), in, opts...)
	if scanErr == nil {
		if err = render(cmd.OutOrStdout(), out, rc.format); err != nil {
			return err
		}
	}

	if rc.printMetrics {
		if err = writeMetrics(cmd.OutOrStdout(), reg); err != nil {
			return err
		}
	}

	return scanErr
}

// writeMetrics dumps every family gathered from reg in the text exposition format.
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	fmt.Fprintln(w)
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}

	return nil
}

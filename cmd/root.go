package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/okian/tally/internal/adapters/report"
	"github.com/okian/tally/internal/adapters/source"
	service "github.com/okian/tally/internal/app"
	"github.com/okian/tally/internal/config"
	"github.com/okian/tally/pkg/logger"
	"github.com/okian/tally/pkg/metrics"
)

// cli holds flag values and the per-run state set up by PersistentPreRunE.
type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	// Flags
	configFile string
	format     string
	noRank     bool
	dumpStats  bool
	logLevel   string

	// Per run
	cfg *config.Config
	log logger.Logger
	svc *service.Service
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "tally [flags] [records-file | -]",
		Short: "Total and rank student scores",
		Long: `Tally sums each student's scores across subjects and ranks students
by total. Records come from a YAML or JSON document with a top-level
"records" list, from stdin when the argument is "-", or from the built-in
sample when no file is given.

Example:
  tally
  tally --format json scores.yaml
  cat scores.json | tally --no-rank -`,
		Args:              maxArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.recorded(c.runRank),
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (YAML; default: $"+config.EnvConfig+")")
	root.PersistentFlags().StringVar(&c.format, "format", "", "output format: "+formatList())
	root.PersistentFlags().BoolVar(&c.dumpStats, "metrics", false, "write Prometheus metrics to stderr after the run")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.Flags().BoolVar(&c.noRank, "no-rank", false, "print totals in first-appearance order without ranks")

	root.AddCommand(newTotalCmd(c))
	return root
}

// setup loads config, applies flag overrides, and builds the logger and
// service for this run.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := logger.InitWithWriter(c.stderr); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	cfg, err := config.Load(ctx, config.WithConfigFile(c.configFile))
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = c.format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("no-rank") {
		cfg.Rank = !c.noRank
	}
	if flags.Changed("metrics") {
		cfg.Metrics = c.dumpStats
	}
	if err := cfg.Validate(ctx); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	c.cfg = cfg
	c.log = logger.Get().With(logger.String("run_id", uuid.NewString()))
	c.svc = service.New(
		service.WithLogger(c.log.Named("service")),
		service.WithSubjects(cfg.SubjectSet()),
	)
	c.log.Debug(ctx, "run configured",
		logger.String("command", cmd.Name()),
		logger.String("format", cfg.Format),
		logger.Bool("rank", cfg.Rank),
	)
	return nil
}

// recorded wraps a RunE to count the run and dump metrics when enabled.
func (c *cli) recorded(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)

		status := "ok"
		if err != nil {
			status = "error"
			c.log.Error(cmd.Context(), "run failed", logger.String("command", cmd.Name()), logger.Error(err))
		}
		metrics.RecordRun(cmd.Name(), status)

		if c.cfg.Metrics {
			if mErr := metrics.WriteText(c.stderr); mErr != nil {
				c.log.Warn(cmd.Context(), "metrics dump failed", logger.Error(mErr))
			}
		}
		return err
	}
}

func (c *cli) runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	w, err := report.New(c.stdout, report.Format(c.cfg.Format))
	if err != nil {
		return err
	}
	records, err := c.svc.Load(ctx, c.source(args))
	if err != nil {
		return err
	}

	if !c.cfg.Rank {
		totals, err := c.svc.Totals(ctx, records)
		if err != nil {
			return err
		}
		return w.Totals(totals)
	}

	ranked, err := c.svc.Rank(ctx, records)
	if err != nil {
		return err
	}
	return w.Ranked(ranked)
}

// source picks the record source: "-" is stdin, any other argument is a
// file, and with no argument the configured records_file or the sample.
func (c *cli) source(args []string) source.Source {
	path := c.cfg.RecordsFile
	if len(args) > 0 {
		path = args[0]
	}
	switch path {
	case "":
		return source.Sample()
	case "-":
		return source.NewReader(c.stdin)
	default:
		return source.NewFile(path)
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}

func formatList() string {
	names := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

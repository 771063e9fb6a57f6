// Package cli implements the connectome command line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/connectome/internal/config"
	"github.com/katalvlaran/connectome/internal/telemetry"
	"github.com/katalvlaran/connectome/loader"
	"github.com/katalvlaran/connectome/matrix"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	// global flags
	cfgPath     string
	debug       bool
	metricsFile string
	sheet       string
	jsonOut     bool

	cfg     *config.Config
	logger  *zap.Logger
	metrics *telemetry.Metrics
	runID   string
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop(), metrics: telemetry.NewMetrics()}

	root := &cobra.Command{
		Use:   "connectome",
		Short: "Connectome module detection and aggregation",
		Long: `connectome finds consensus community structure in brain connectivity
matrices and aggregates connection strength within and between modules.

Examples:
  connectome modules subject01.csv --gamma 1.1 --iterations 200
  connectome aggregate subject01.csv --module1 0,1,2 --module2 3,4
  connectome between subject01.csv partition.csv --mode mean-length
  connectome baseline --vertices 90 --edges 400`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this .prom textfile")
	pf.StringVar(&a.sheet, "sheet", "", "worksheet to read from .xlsx inputs (default: first)")
	pf.BoolVar(&a.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		a.modulesCmd(),
		a.aggregateCmd(),
		a.betweenCmd(),
		a.edgesCmd(),
		a.baselineCmd(),
		a.transformCmd(),
		versionCmd(),
	)

	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads configuration and builds the logger for the invocation.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = a.debug
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.Metrics.File = a.metricsFile
	}
	if err = config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	a.runID = uuid.NewString()
	if a.logger, err = telemetry.NewLogger(cfg.Debug, a.runID); err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", a.cfgPath),
		zap.Any("detection", cfg.Detection))

	return nil
}

// wrap records metrics and flushes logs around a command body.
func (a *app) wrap(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		err := run(cmd, args)
		a.metrics.ObserveCommand(cmd.Name(), started, err)
		if err != nil {
			a.logger.Error("command failed", zap.String("command", cmd.Name()), zap.Error(err))
		} else {
			a.logger.Info("command finished",
				zap.String("command", cmd.Name()),
				zap.Duration("elapsed", time.Since(started)))
		}
		if a.cfg != nil && a.cfg.Metrics.File != "" {
			if werr := a.metrics.WriteTextfile(a.cfg.Metrics.File); werr != nil && err == nil {
				err = werr
			}
		}
		_ = a.logger.Sync()

		return err
	}
}

// load reads one matrix, honouring --sheet.
func (a *app) load(path string) (*matrix.Dense, error) {
	var opts []loader.Option
	if a.sheet != "" {
		opts = append(opts, loader.WithSheet(a.sheet))
	}
	m, err := loader.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("matrix loaded", zap.String("path", path), zap.Int("rows", m.Rows()), zap.Int("cols", m.Cols()))

	return m, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "connectome %s\n", Version)
			return err
		},
	}
}

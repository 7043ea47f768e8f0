package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/entd-longdistance/config"
	"github.com/theoremus-urban-solutions/entd-longdistance/internal"
	"github.com/theoremus-urban-solutions/entd-longdistance/metrics"
)

type globalOptions struct {
	configPath   string
	dataPath     string
	outputPath   string
	samplingRate float64
	logLevel     string
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg     config.AppConfig
	logger  *zap.Logger
	metrics *metrics.Recorder
	runID   string
}

func newRootCmd() *cobra.Command {
	var opts globalOptions
	a := &app{}

	cmd := &cobra.Command{
		Use:           "entd-pipeline",
		Short:         "ENTD 2008 long-distance cleaning and demand preparation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			a.finish(cmd.Context())
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: config.yml or ./config/config.yml)")
	flags.StringVar(&opts.dataPath, "data-path", "", "Directory containing entd_2008/ (overrides data_path)")
	flags.StringVar(&opts.outputPath, "output-path", "", "Output directory (overrides output_path)")
	flags.Float64Var(&opts.samplingRate, "sampling-rate", 0, "Population sampling rate in (0, 1] (overrides sampling_rate)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error (overrides log.level)")

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newCleanCmd(a))
	cmd.AddCommand(newJTABCmd(a))
	cmd.AddCommand(newRunCmd(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command, opts globalOptions) error {
	flags := cmd.Flags()
	cfg, err := config.Load(opts.configPath, func(c *config.AppConfig) {
		if flags.Changed("data-path") {
			c.DataPath = opts.dataPath
		}
		if flags.Changed("output-path") {
			c.OutputPath = opts.outputPath
		}
		if flags.Changed("sampling-rate") {
			c.SamplingRate = opts.samplingRate
		}
		if flags.Changed("log-level") {
			c.Log.Level = opts.logLevel
		}
	})
	if err != nil {
		return withCode(exitUsage, err)
	}
	logger, err := internal.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return withCode(exitUsage, err)
	}

	a.cfg = cfg
	a.runID = uuid.NewString()
	a.logger = logger.With(zap.String("run_id", a.runID))
	a.metrics = metrics.NewRecorder()
	return nil
}

// finish pushes the metrics when a Pushgateway is configured. A failed push
// is logged only.
func (a *app) finish(ctx context.Context) {
	if a.cfg.Metrics.PushURL != "" {
		if err := a.metrics.Push(ctx, a.cfg.Metrics.PushURL, a.cfg.Metrics.Job, a.runID); err != nil {
			a.logger.Warn("metrics push failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-bias-checker/internal/config"
	"github.com/jonathan/resume-bias-checker/internal/ingestion"
	"github.com/jonathan/resume-bias-checker/internal/logger"
	"github.com/jonathan/resume-bias-checker/internal/observability"
	"github.com/jonathan/resume-bias-checker/internal/pipeline"
	"github.com/jonathan/resume-bias-checker/internal/store"
)

const appName = "bias_checker"

// app is the state shared by the subcommands of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string
	noColor bool

	cfg     *config.Config
	logger  *zap.Logger
	out     io.Writer
	printer *observability.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   appName,
		Short: "Check resume match scores for demographic bias",
		Long: "bias_checker infers gender and race from resume names and wording, groups match scores " +
			"by demographic and flags any group scoring below 80% of the top group.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "a config file (default is bias_checker.yaml in current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured output")
	flags.String("store", "", "session backend: file, memory, redis or postgres")
	flags.String("store-dir", "", "directory used by the file backend")
	flags.String("session-key", "", "key the current session is stored under")
	flags.Duration("pacing", 0, "pause after each resume, e.g. 300ms")

	_ = a.v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("log.json", flags.Lookup("json"))
	_ = a.v.BindPFlag("store.backend", flags.Lookup("store"))
	_ = a.v.BindPFlag("store.dir", flags.Lookup("store-dir"))
	_ = a.v.BindPFlag("session_key", flags.Lookup("session-key"))
	_ = a.v.BindPFlag("pacing", flags.Lookup("pacing"))

	root.AddCommand(
		newAnalyzeCmd(a),
		newSampleCmd(a),
		newShowCmd(a),
		newReportCmd(a),
		newServeCmd(a),
		newClearCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger and printer before any subcommand runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	a.out = cmd.OutOrStdout()
	a.printer = observability.NewPrinter(a.out, !a.noColor && !color.NoColor)

	log.Debug("configuration loaded",
		zap.String("store", cfg.Store.Backend),
		zap.String("session_key", cfg.SessionKey),
		zap.Duration("pacing", cfg.Pacing),
	)
	return nil
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, store.Options{
		Backend:     a.cfg.Store.Backend,
		Dir:         a.cfg.Store.Dir,
		RedisURL:    a.cfg.Store.RedisURL,
		DatabaseURL: a.cfg.Store.DatabaseURL,
		TTL:         a.cfg.Store.TTL,
		Logger:      a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", a.cfg.Store.Backend, err)
	}
	return st, nil
}

// closeStore closes st, logging rather than returning the error
func (a *app) closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		a.logger.Warn("failed to close store", zap.Error(err))
	}
}

// random returns the fallback score source; seed 0 uses the global source
func (a *app) random() ingestion.RandomSource {
	if a.cfg.Seed == 0 {
		return ingestion.DefaultRandom()
	}
	return ingestion.NewSeededRandom(a.cfg.Seed)
}

func (a *app) runOptions() pipeline.RunOptions {
	return pipeline.RunOptions{
		OnProgress: a.printer.PrintProgress,
		Pacing:     a.cfg.Pacing,
		Random:     a.random(),
		Logger:     a.logger,
	}
}

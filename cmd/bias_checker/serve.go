package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-bias-checker/internal/config"
	"github.com/jonathan/resume-bias-checker/internal/server"
	"github.com/jonathan/resume-bias-checker/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the analysis, session and report endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeStore(st)

			srv := server.New(st, server.Options{
				Port:           a.cfg.Server.Port,
				SessionKey:     a.cfg.SessionKey,
				Pacing:         a.cfg.Pacing,
				Random:         a.random(),
				ReportWorkDir:  a.cfg.Report.WorkDir,
				MaxUploadBytes: a.cfg.Server.MaxUploadBytes,
				RateLimit:      rateLimitConfig(a.cfg.Server.RateLimit),
				Logger:         a.logger,
			})

			a.logger.Info("serving",
				zap.Int("port", a.cfg.Server.Port),
				zap.String("store", a.cfg.Store.Backend),
			)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().Int("port", 8080, "Port to listen on")
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

// rateLimitConfig applies the configured defaults and lists on top of the endpoint tiers
func rateLimitConfig(c config.RateLimitConfig) *ratelimit.Config {
	rl := ratelimit.DefaultConfig()
	rl.Enabled = c.Enabled
	rl.DefaultLimit = c.DefaultLimit
	rl.DefaultWindow = c.DefaultWindow
	return rl.WithLists(c.Allowlist, c.Denylist)
}

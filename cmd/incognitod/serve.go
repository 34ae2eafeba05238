package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aluminumlabs/incognito/api"
	"github.com/aluminumlabs/incognito/pkg/fetcher"
	"github.com/aluminumlabs/incognito/pkg/httpserver"
	"github.com/aluminumlabs/incognito/pkg/incognito"
	"github.com/aluminumlabs/incognito/pkg/logger"
	"github.com/aluminumlabs/incognito/pkg/ratelimiter"
	"github.com/aluminumlabs/incognito/pkg/requestid"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the session API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return serve(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")
	return cmd
}

// serve blocks until the command context is done, then ends every session.
func serve(cmd *cobra.Command, cfg appConfig) (err error) {
	ctx := cmd.Context()

	logOpts, err := logger.FromConfig(cfg.Log)
	if err != nil {
		return err
	}
	logOpts = append([]logger.Option{logger.WithEnvironment(cfg.Environment, "incognitod")}, logOpts...)
	logOpts = append(logOpts,
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(requestid.LogExtractor),
	)
	log := logger.New(logOpts...)

	manager, err := incognito.New(cfg.Incognito, incognito.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		closeErr := manager.Close()
		if err != nil || closeErr != nil {
			log.ErrorContext(ctx, "incognitod stopped", logger.Errors(err, closeErr))
		} else {
			log.InfoContext(ctx, "incognitod stopped")
		}
		err = errors.Join(err, closeErr)
	}()

	apiOpts := []api.Option{api.WithLogger(log)}
	if cfg.RateLimit.Enabled {
		limiter, err := ratelimiter.New(cfg.RateLimit)
		if err != nil {
			return err
		}
		defer limiter.Close()
		apiOpts = append(apiOpts, api.WithSessionLimiter(limiter))
	}

	facade := incognito.NewFacade(manager, fetcher.New(cfg.Fetcher))
	handler := api.New(facade, apiOpts...).Handler()
	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))

	log.InfoContext(ctx, "incognitod starting",
		slog.String("version", version),
		slog.Int("pid", os.Getpid()),
		slog.Int64("cache_capacity", cfg.Incognito.CacheCapacity),
		slog.Duration("cookie_lifetime", cfg.Incognito.CookieLifetime),
		slog.Duration("history_retention", cfg.Incognito.HistoryRetention),
	)
	return srv.Run(ctx, handler)
}

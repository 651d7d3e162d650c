package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"homeprice/db"
	qhttp "homeprice/http"
	"homeprice/ml"
	"homeprice/monitoring"
	"homeprice/service"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimate API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.config

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	opts := service.Options{
		CacheSize: cfg.Cache.Size,
		Metrics:   metrics,
		Logger:    a.logger,
	}
	if cfg.History.Path != "" {
		store, err := db.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.History = store
		a.logger.Info("estimate history enabled", zap.String("path", cfg.History.Path))
	}

	svc, err := service.New(a.estimator, opts)
	if err != nil {
		return err
	}

	if cfg.Artifacts.Watch {
		watcher, err := ml.NewArtifactWatcher(a.logger, cfg.Artifacts.ColumnsPath, cfg.Artifacts.ModelPath)
		if err != nil {
			return err
		}
		go watcher.Run(ctx)
	}

	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           cfg.HTTP.Port,
		Timeout:        cfg.HTTP.Timeout,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		RecentLimit:    cfg.History.RecentLimit,
	}, svc, metrics, registry, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	if err := server.Stop(); err != nil {
		a.logger.Warn("server forced to shutdown", zap.Error(err))
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"recycling/internal/backend"
	"recycling/internal/cli"
	"recycling/internal/dataset"
	apphttp "recycling/internal/http"
	"recycling/internal/log"
	"recycling/internal/report"
	"recycling/internal/session"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, os.Stdout)

	// Validate has already parsed both.
	rate, _ := cfg.Rate()
	loc, _ := cfg.Location()

	res, err := backend.NewFactory(logger).CreateBackend(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize data source", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := res.Close(); err != nil {
			logger.Error("Data source cleanup error", log.FieldError, err)
		}
	}()

	loader := dataset.NewLoader(res.Source, dataset.LoaderConfig{Timeout: cfg.FetchTimeout, Location: loc}, logger)
	holder := dataset.NewHolder(loader)
	holder.Refresh()

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Holder: holder,
		Sessions: session.NewStore(session.Config{
			TTL:              cfg.SessionTTL,
			MaxSessions:      cfg.SessionMax,
			ResetPageOnLogin: cfg.ResetPageOnLogin,
		}),
		Engine: report.NewEngine(report.Config{UnitRate: rate, WindowMonths: cfg.WindowMonths, Location: loc}),
		Logger: logger,
	}, apphttp.Options{
		PageSize:           cfg.PageSize,
		ReloadOnSession:    cfg.ReloadOnSession,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		SessionTTL:         cfg.SessionTTL,
	})

	stopped := cli.GracefulShutdown(logger, 30*time.Second, srv.Shutdown)

	logger.Info("Starting recycling dashboard", "port", cfg.Port, log.FieldBackend, cfg.DataBackend, log.FieldOperation, log.OpStartup)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-stopped.Done()
	logger.Info("Server stopped gracefully")
}

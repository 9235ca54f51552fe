package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cometcontrol/comet-backend/api/routes"
	"github.com/cometcontrol/comet-backend/internal/catalog"
	"github.com/cometcontrol/comet-backend/internal/mailer"
	"github.com/cometcontrol/comet-backend/internal/ratelimit"
	"github.com/cometcontrol/comet-backend/internal/submissions"
	"github.com/cometcontrol/comet-backend/pkg/config"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/metrics"
	"github.com/cometcontrol/comet-backend/pkg/sendgrid"
	"github.com/cometcontrol/comet-backend/pkg/storage/blob"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	submissionMetrics := metrics.NewSubmissionMetrics(registry)

	var provider mailer.Provider
	if cfg.Sendgrid.Configured() {
		client, err := sendgrid.NewClient(cfg.Sendgrid)
		if err != nil {
			logg.Error(context.Background(), "failed to build sendgrid client", err)
			os.Exit(1)
		}
		provider = client
	} else {
		logg.Warn(context.Background(), "no delivery credential configured, running in dev mode")
	}

	dispatcher, err := mailer.NewService(provider, cfg.Sendgrid, logg, submissionMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer service", err)
		os.Exit(1)
	}

	limiter := ratelimit.NewLimiter()
	gcCtx, cancelGC := context.WithCancel(context.Background())
	defer cancelGC()
	limiter.StartGC(gcCtx, cfg.RateLimit.GCInterval, logg)

	submissionSvc, err := submissions.NewService(
		limiter,
		ratelimit.NewPolicy(submissions.ActionContact, cfg.RateLimit.ContactLimit, cfg.RateLimit.ContactWindow),
		ratelimit.NewPolicy(submissions.ActionQuote, cfg.RateLimit.QuoteLimit, cfg.RateLimit.QuoteWindow),
		dispatcher,
		logg,
		submissionMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create submission service", err)
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewRepository(cfg.Catalog.DataPath)
	if err != nil {
		logg.Error(context.Background(), "failed to open catalog", err)
		os.Exit(1)
	}
	catalogSvc, err := catalog.NewService(catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	uploadStore, err := blob.NewDiskStore(cfg.Upload)
	if err != nil {
		logg.Error(context.Background(), "failed to open upload store", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Limiter:     limiter,
			AuthPolicy:  ratelimit.NewPolicy("auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow),
			Submissions: submissionSvc,
			Catalog:     catalogSvc,
			CatalogPing: catalogRepo,
			Uploads:     uploadStore,
			Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"chimera/internal/narrative"
	narrativehandler "chimera/internal/narrative/handler"
	narrativemetrics "chimera/internal/narrative/metrics"
	"chimera/internal/platform/config"
	"chimera/internal/platform/httpserver"
	"chimera/internal/platform/logger"
	"chimera/internal/platform/metrics"
	presentationhandler "chimera/internal/presentation/handler"
	presentationmetrics "chimera/internal/presentation/metrics"
	"chimera/internal/presentation/scenes"
	"chimera/internal/presentation/service"
	"chimera/internal/presentation/store"
	httptransport "chimera/internal/transport/http"
	"chimera/pkg/platform/clock"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Presentation logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chimera: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpMetrics := metrics.New()
	presMetrics := presentationmetrics.New()
	narrMetrics := narrativemetrics.New()

	clk := clock.Scale(clock.Real{}, cfg.Speed)
	generator := narrative.FromKey(ctx, cfg.APIKey, cfg.NarrativeModel, log, narrMetrics)
	if !cfg.NarrativeEnabled() {
		log.Warn("no API key configured; report narrative will show a notification")
	}

	svc := service.New(store.NewInMemoryStore(), scenes.NewCatalog(generator),
		service.WithLogger(log),
		service.WithMetrics(presMetrics),
		service.WithClock(clk),
		service.WithDefaultSubject(cfg.DefaultSubject),
		service.WithMaxPresentations(cfg.MaxPresentations),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        httpMetrics,
		Clock:          clk,
		MetricsHandler: promhttp.Handler(),
		V1: []httptransport.Registrar{
			presentationhandler.New(svc, log, httpMetrics),
			narrativehandler.New(generator, log),
		},
	})
	srv := httpserver.New(cfg.Addr, router, log)

	log.Info("starting chimera",
		"addr", cfg.Addr,
		"speed", cfg.Speed,
		"narrative_model", cfg.NarrativeModel,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.ShutdownTimeout)
	})
	g.Go(func() error {
		<-gctx.Done()
		// Closing sessions ends open event streams so Shutdown can drain them.
		svc.Close(context.Background())
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("chimera stopped")
	return nil
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"consentgate/internal/consent/handler"
	"consentgate/internal/consent/metrics"
	"consentgate/internal/consent/notify"
	"consentgate/internal/consent/receipt"
	"consentgate/internal/consent/service"
	"consentgate/internal/consent/store"
	"consentgate/internal/platform/config"
	"consentgate/internal/platform/httpserver"
	"consentgate/internal/platform/logger"
	"consentgate/internal/resource"
	"consentgate/internal/resource/tracer"
	httptransport "consentgate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing consentgate",
		"addr", cfg.Addr,
		"catalog", cfg.CatalogPath,
		"consent_ttl_days", cfg.ConsentTTLDays,
	)

	catalog, err := resource.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		// A missing catalog degrades to consent-only operation; there is
		// simply nothing to gate.
		log.Warn("catalog unavailable, running without gated resources",
			"path", cfg.CatalogPath,
			"error", err,
		)
		catalog, _ = resource.NewCatalog(nil)
	}

	m := metrics.New()

	broadcaster := notify.New(notify.WithLogger(log))
	events, unsubscribe := broadcaster.Subscribe(16)
	go func() {
		for event := range events {
			log.Info("consent decision event",
				"decision", event.Decision,
				"timestamp", event.Timestamp,
			)
		}
	}()

	fetcher := resource.NewHTTPFetcher(
		resource.WithBaseURL(cfg.ResourceBaseURL),
		resource.WithTimeout(cfg.FetchTimeout),
	)
	loader := resource.NewLoader(fetcher,
		resource.WithLogger(log),
		resource.WithObserver(m),
		resource.WithTracer(tracer.NewOTel()),
	)

	svc := service.NewService(catalog, loader,
		service.WithMetrics(m),
		service.WithLogger(log),
	)

	issuer := receipt.NewIssuer(cfg.ReceiptSigningKey)
	if issuer == nil {
		log.Info("no receipt signing key configured, receipt endpoint disabled")
	}

	consentHandler := handler.New(svc, catalog, loader, log,
		handler.WithIssuer(issuer),
		handler.WithMetrics(m),
		handler.WithStoreOptions(
			store.WithTTLDays(cfg.ConsentTTLDays),
			store.WithSchemaVersion(cfg.SchemaVersion),
			store.WithNotifier(broadcaster),
			store.WithLogger(log),
		),
	)

	router := httptransport.NewRouter(consentHandler, log)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	loader.Drain()
	unsubscribe()
	broadcaster.Close()

	log.Info("server stopped")
}

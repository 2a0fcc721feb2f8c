package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"tldr/internal/config"
	"tldr/internal/infra/farcaster"
	"tldr/internal/infra/fetcher"
	"tldr/internal/infra/summarizer"
	"tldr/internal/observability/logging"
	"tldr/internal/observability/tracing"
	sumUC "tldr/internal/usecase/summarize"

	hhttp "tldr/internal/handler/http"
	"tldr/internal/handler/http/middleware"
	"tldr/internal/handler/http/requestid"
	hsum "tldr/internal/handler/http/summarize"

	_ "tldr/docs" // swagger docs
)

// @title           TL;DR API
// @version         1.0
// @description     Summarizes pasted text, web pages and Farcaster posts into a short TL;DR.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	shutdownTracing := tracing.Setup("tldr", cfg.Version)

	srv, limiter, err := setupServer(logger, cfg)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := runServer(logger, cfg, srv, limiter); err != nil {
		logger.Error("server failed", slog.Any("error", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("tracer shutdown failed", slog.Any("error", err))
	}
}

// buildService wires the fetcher, the post resolver and the summarization
// backend into the request orchestrator.
func buildService(logger *slog.Logger, cfg *config.Config) (*sumUC.Service, *hhttp.HealthHandler) {
	pages := fetcher.NewPageFetcher(fetcher.ConfigFrom(cfg.Fetch))

	resolver := farcaster.NewResolver(farcaster.Config{
		APIKey:  cfg.Farcaster.APIKey,
		BaseURL: cfg.Farcaster.BaseURL,
		Timeout: cfg.Farcaster.Timeout,
	}, pages, nil)
	if !resolver.APIConfigured() {
		logger.Warn("NEYNAR_API_KEY not set; post mode falls back to page scraping")
	}

	var backend sumUC.Backend
	if cfg.Summarizer.Configured() {
		b, err := summarizer.New(summarizer.ConfigFrom(cfg.Summarizer))
		if err != nil {
			logger.Error("failed to create summarization backend", slog.Any("error", err))
			os.Exit(1)
		}
		backend = b
		logger.Info("summarization backend ready",
			slog.String("provider", b.Name()),
			slog.Bool("circuit_breaker", cfg.Summarizer.CircuitBreaker),
			slog.Int("max_attempts", cfg.Summarizer.MaxAttempts))
	} else {
		logger.Warn("summarization backend not configured; /api/summarize will fail until a key is set",
			slog.String("provider", cfg.Summarizer.Provider))
	}

	dispatcher := sumUC.NewDispatcher(backend)

	health := &hhttp.HealthHandler{
		Version:    cfg.Version,
		Provider:   cfg.Summarizer.Provider,
		Summarizer: dispatcher,
		PostAPI:    hhttp.ConfigurableFunc(resolver.APIConfigured),
	}
	if r, ok := backend.(*summarizer.Resilient); ok && cfg.Summarizer.CircuitBreaker {
		health.Breaker = r
	}

	return sumUC.NewService(pages, resolver, dispatcher), health
}

// setupServer builds the HTTP server with all routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.Config) (*http.Server, *middleware.IPRateLimiter, error) {
	proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, nil, err
	}
	if err := middleware.ValidateOrigins(cfg.Server.CORSAllowedOrigins); err != nil {
		return nil, nil, err
	}

	svc, health := buildService(logger, cfg)

	if len(proxies) > 0 {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxies)))
	} else {
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}
	limiter := middleware.NewIPRateLimiter(middleware.IPRateLimiterConfig{
		Rate:  cfg.Server.RateLimit,
		Burst: cfg.Server.RateBurst,
	}, middleware.NewIPExtractor(proxies))
	if limiter.Enabled() {
		logger.Info("rate limiting initialized",
			slog.Float64("rate", cfg.Server.RateLimit),
			slog.Int("burst", cfg.Server.RateBurst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", health)
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	hsum.Register(mux, svc,
		limiter.Middleware(),
		hhttp.Timeout(cfg.Server.RequestTimeout),
	)

	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.Server.CORSAllowedOrigins))
	}

	handler := hhttp.Chain(mux,
		middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.Server.CORSAllowedOrigins}),
		requestid.Middleware,
		middleware.SecurityHeaders("/swagger/"),
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(cfg.Server.MaxBodyBytes),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	return srv, limiter, nil
}

// runServer serves until SIGINT/SIGTERM, then shuts down gracefully.
func runServer(logger *slog.Logger, cfg *config.Config, srv *http.Server, limiter *middleware.IPRateLimiter) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if limiter.Enabled() {
		g.Go(func() error {
			hhttp.StartRateLimitCleanup(gctx, limiter, hhttp.DefaultCleanupInterval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// Command api runs the content API server: feed endpoints backed by the
// generative pipeline, study lab endpoints, auth token issuance, health
// checks, Prometheus metrics, and the scheduled front-page warmer.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"lexfeed/internal/common/pagination"
	"lexfeed/internal/common/sanitize"
	"lexfeed/internal/infra/fetcher"
	"lexfeed/internal/infra/generator"
	"lexfeed/internal/infra/notifier"
	"lexfeed/internal/observability/logging"
	"lexfeed/internal/observability/tracing"
	feedUC "lexfeed/internal/usecase/feed"
	labUC "lexfeed/internal/usecase/studylab"
	"lexfeed/pkg/config"

	hhttp "lexfeed/internal/handler/http"
	hauth "lexfeed/internal/handler/http/auth"
	hfeed "lexfeed/internal/handler/http/feed"
	hlab "lexfeed/internal/handler/http/lab"
	"lexfeed/internal/handler/http/requestid"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	authCfg, err := hauth.LoadConfig()
	if err != nil {
		logger.Error("auth configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	gen, provider := initGenerator(logger)
	filter, policySource := initSanitizer(logger)
	sourceFetcher := initSourceFetcher(logger)

	feedSvc := feedUC.NewService(gen, filter, feedUC.Options{
		CacheTTL: config.GetEnvDuration("BATCH_CACHE_TTL", 35*time.Minute),
	})
	labSvc := labUC.NewService(gen, sourceFetcher)

	version := config.GetEnvString("VERSION", "dev")
	handler := setupServer(logger, feedSvc, labSvc, authCfg, provider, policySource, version)

	warmer := startWarmer(logger, feedSvc, initNotifier(logger))
	defer warmer.Stop()

	runServer(logger, handler, version)
}

// initGenerator selects the backend from available credentials. Claude wins
// when both keys are set; with no key at all the server runs on the NoOp
// generator and every batch is empty.
func initGenerator(logger *slog.Logger) (feedUC.Generator, string) {
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		g, err := generator.NewClaude(apiKey)
		if err != nil {
			logger.Error("claude generator init failed", slog.Any("error", err))
			os.Exit(1)
		}
		return g, "claude"
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		g, err := generator.NewOpenAI(apiKey)
		if err != nil {
			logger.Error("openai generator init failed", slog.Any("error", err))
			os.Exit(1)
		}
		return g, "openai"
	}

	logger.Warn("no generator credentials configured, serving empty batches")
	return generator.NewNoOp(), "noop"
}

// initSanitizer builds the record filter, optionally overriding the static
// policy from SANITIZE_POLICY_FILE. SANITIZE_EXTRA_BLOCKED_HOSTS appends to
// the blocklist of whichever policy is in effect.
func initSanitizer(logger *slog.Logger) (*sanitize.Filter, string) {
	policy := sanitize.DefaultPolicy()
	source := "default"

	if path := os.Getenv("SANITIZE_POLICY_FILE"); path != "" {
		loaded, err := sanitize.LoadPolicyFile(path)
		if err != nil {
			logger.Error("sanitize policy file invalid",
				slog.String("path", path),
				slog.Any("error", err))
			os.Exit(1)
		}
		policy, source = loaded, path
	}

	policy.BlockedHosts = append(policy.BlockedHosts,
		config.GetEnvStringList("SANITIZE_EXTRA_BLOCKED_HOSTS", nil)...)

	logger.Info("sanitize policy loaded",
		slog.String("source", source),
		slog.Int("blocked_hosts", len(policy.BlockedHosts)))
	return sanitize.New(policy), source
}

// initSourceFetcher builds the study lab's URL-to-text fetcher.
func initSourceFetcher(logger *slog.Logger) *fetcher.SourceFetcher {
	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("source fetch configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	return fetcher.NewSourceFetcher(cfg)
}

// setupServer registers all routes and wraps them in the middleware chain.
func setupServer(
	logger *slog.Logger,
	feedSvc *feedUC.Service,
	labSvc *labUC.Service,
	authCfg hauth.Config,
	provider, policySource, version string,
) http.Handler {
	paginationCfg := pagination.LoadFromEnv()

	// Token issuance gets a tight per-IP budget; lab generation a looser one.
	authLimiter := hhttp.NewRateLimiter(5, time.Minute)
	labLimiter := hhttp.NewRateLimiter(
		config.GetEnvInt("LAB_RATE_LIMIT", 20), time.Minute)

	mux := http.NewServeMux()

	mux.Handle("POST /auth/token", authLimiter.Limit(hauth.TokenHandler(authCfg)))
	mux.Handle("GET /healthz", &hhttp.HealthHandler{
		Version:      version,
		Provider:     provider,
		PolicySource: policySource,
	})
	mux.Handle("GET /readyz", &hhttp.ReadyHandler{})
	mux.Handle("GET /livez", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hfeed.Register(mux, feedSvc, paginationCfg, logger)

	labMux := http.NewServeMux()
	hlab.Register(labMux, labSvc, authCfg, logger)
	mux.Handle("/lab/", labLimiter.Limit(labMux))

	// Innermost to outermost: security headers, metrics, tracing, input
	// limits, access log, recovery, request ID.
	var handler http.Handler = mux
	handler = hhttp.SecurityHeaders()(handler)
	handler = hhttp.MetricsMiddleware(handler)
	handler = tracing.Middleware(handler)
	handler = hhttp.InputValidation()(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = requestid.Middleware(handler)

	return handler
}

// initNotifier builds the ops alert channel from ALERT_WEBHOOK_URL. The kind
// of webhook is taken from ALERT_WEBHOOK_KIND (slack or discord).
func initNotifier(logger *slog.Logger) notifier.Notifier {
	url := os.Getenv("ALERT_WEBHOOK_URL")
	if url == "" {
		return notifier.NewNoOpNotifier()
	}

	timeout := config.GetEnvDuration("ALERT_WEBHOOK_TIMEOUT", 10*time.Second)
	kind := config.GetEnvString("ALERT_WEBHOOK_KIND", "slack")
	switch kind {
	case "slack":
		logger.Info("alert notifier enabled", slog.String("kind", kind))
		return notifier.NewSlackNotifier(url, timeout)
	case "discord":
		logger.Info("alert notifier enabled", slog.String("kind", kind))
		return notifier.NewDiscordNotifier(url, timeout)
	default:
		logger.Error("unknown alert webhook kind", slog.String("kind", kind))
		os.Exit(1)
		return nil
	}
}

// startWarmer schedules periodic refreshes of the front page of every kind
// and kicks one off immediately so the first visitors hit a warm cache.
// Failed cycles raise an ops alert.
func startWarmer(logger *slog.Logger, feedSvc *feedUC.Service, alerts notifier.Notifier) *cron.Cron {
	schedule := config.GetEnvString("WARM_SCHEDULE", "@every 30m")
	warmParams := pagination.Params{
		Page:  1,
		Limit: config.GetEnvInt("WARM_LIMIT", 10),
	}

	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := feedSvc.WarmAll(ctx, warmParams); err != nil {
			logger.Warn("warm cycle incomplete", slog.Any("error", err))
			if nerr := alerts.Notify(ctx, notifier.Alert{
				Component: "warmer",
				Message:   "warm cycle incomplete: " + err.Error(),
			}); nerr != nil {
				logger.Warn("alert not delivered", slog.Any("error", nerr))
			}
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, warm); err != nil {
		logger.Error("invalid warm schedule",
			slog.String("schedule", schedule),
			slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	go warm()

	logger.Info("front-page warmer started", slog.String("schedule", schedule))
	return c
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donkinwatch/db"
	"donkinwatch/internal/config"
	"donkinwatch/internal/handler"
	"donkinwatch/internal/logger"
	"donkinwatch/internal/notifier"
	"donkinwatch/internal/pipeline"
	"donkinwatch/internal/repository"
	"donkinwatch/internal/tracker"
	"donkinwatch/internal/trigger"
	"donkinwatch/pkg/llm"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	godotenv.Load()

	log := logger.New("api")
	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("open store", slog.Any("err", err), slog.String("backend", cfg.Store.Backend))
		os.Exit(1)
	}
	defer db.Close()
	defer db.CloseRedis()

	client, err := llm.NewSearchClient(cfg.Search.Provider, cfg.Search.APIKey, cfg.Search.Model, cfg.Search.BaseURL)
	if err != nil {
		log.Error("init search client", slog.Any("err", err))
		os.Exit(1)
	}
	local := pipeline.New(client, cfg.Search.Delay, pipeline.ParsePolicy(cfg.Search.FailurePolicy))

	news := tracker.New(store, local, cfg.Search.Terms, cfg.AutoRefreshInterval)
	news.Start(ctx)

	var runner pipeline.Runner = local
	if cfg.Search.EndpointURL != "" {
		runner = pipeline.NewRemoteRunner(cfg.Search.EndpointURL)
		log.Info("triggers use remote search endpoint", slog.String("url", cfg.Search.EndpointURL))
	}

	opts := []trigger.Option{trigger.WithIngester(news)}
	if cfg.MailConfigured() {
		transport := notifier.NewSMTPTransport(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.User, cfg.Mail.Password)
		opts = append(opts, trigger.WithNotifier(notifier.New(transport, cfg.Mail.User, cfg.Mail.Recipient)))
	} else {
		log.Warn("mail transport not configured, notifications disabled")
	}
	if db.Redis != nil {
		opts = append(opts, trigger.WithLocker(trigger.NewRedisLocker(db.Redis, cfg.TriggerLockTTL)))
	}
	triggers := trigger.NewService(runner, cfg.Search.Terms, opts...)

	if cfg.CronSecret == "" {
		log.Warn("CRON_SECRET is not set, /api/cron will reject every request")
	}

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	handler.Register(r, handler.Handlers{
		Search:   handler.NewSearchHandler(local, cfg.Search.APIKey != ""),
		Trigger:  handler.NewTriggerHandler(triggers, cfg.CronSecret),
		News:     handler.NewNewsHandler(news),
		Settings: handler.NewSettingsHandler(news),
		Health:   handler.NewHealthHandler(store, repository.LastRefreshKey),
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
	}

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr), slog.String("provider", cfg.Search.Provider))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		if err := db.Connect(cfg.Store.DatabaseURL); err != nil {
			return nil, err
		}
		store := repository.NewPostgresStore(db.DB)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreRedis:
		if err := db.ConnectRedis(ctx, cfg.Store.RedisURL); err != nil {
			return nil, err
		}
		return repository.NewRedisStore(db.Redis), nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

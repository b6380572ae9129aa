package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"donkinwatch/db"
	"donkinwatch/internal/config"
	"donkinwatch/internal/logger"
	"donkinwatch/internal/notifier"
	"donkinwatch/internal/pipeline"
	"donkinwatch/internal/trigger"
	"donkinwatch/pkg/llm"

	"github.com/joho/godotenv"
)

// checker runs one search-and-notify pass and exits, for schedulers that
// start a process instead of calling /api/cron.
func main() {
	godotenv.Load()

	logger.New("checker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if cfg.Search.APIKey == "" {
		log.Fatalf("no API key configured for search provider %q", cfg.Search.Provider)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	client, err := llm.NewSearchClient(cfg.Search.Provider, cfg.Search.APIKey, cfg.Search.Model, cfg.Search.BaseURL)
	if err != nil {
		log.Fatalf("error creating search client: %v", err)
	}
	runner := pipeline.New(client, cfg.Search.Delay, pipeline.ParsePolicy(cfg.Search.FailurePolicy))

	var opts []trigger.Option
	if cfg.MailConfigured() {
		transport := notifier.NewSMTPTransport(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.User, cfg.Mail.Password)
		opts = append(opts, trigger.WithNotifier(notifier.New(transport, cfg.Mail.User, cfg.Mail.Recipient)))
	}
	if cfg.Store.RedisURL != "" {
		if err := db.ConnectRedis(ctx, cfg.Store.RedisURL); err != nil {
			log.Fatalf("error connecting to redis: %v", err)
		}
		defer db.CloseRedis()
		opts = append(opts, trigger.WithLocker(trigger.NewRedisLocker(db.Redis, cfg.TriggerLockTTL)))
	}

	report, err := trigger.NewService(runner, cfg.Search.Terms, opts...).Run(ctx)
	if err != nil {
		slog.Error("check failed", "error", err)
		os.Exit(1)
	}

	for _, f := range report.Failures {
		slog.Warn("search term failed", "term", f.SearchTerm, "error", f.Err)
	}

	slog.Info("check finished",
		"run_id", report.RunID,
		"has_updates", report.HasUpdates,
		"news_count", report.NewsCount,
		"results", report.TotalResults,
		"notified", report.Notified,
	)
}

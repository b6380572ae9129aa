package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderPerplexity = "perplexity"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

var DefaultSearchTerms = []string{
	"Donkin coal mine sale",
	"Donkin mine investor",
	"Morien Resources Donkin",
	"Kameron Collieries sale",
	"Donkin mine buyer",
}

// Search configures the external search provider and the pipeline.
type Search struct {
	Provider      string
	APIKey        string
	Model         string
	BaseURL       string
	Delay         time.Duration
	Terms         []string
	FailurePolicy string
	// EndpointURL, when set, makes triggers call the search endpoint over
	// HTTP instead of running the pipeline in-process.
	EndpointURL string
}

type Mail struct {
	User      string
	Password  string
	Recipient string
	SMTPHost  string
	SMTPPort  int
}

type Store struct {
	Backend     string
	DatabaseURL string
	RedisURL    string
}

type Config struct {
	BindAddr            string
	FrontendURL         string
	CronSecret          string
	AutoRefreshInterval time.Duration
	TriggerLockTTL      time.Duration
	Search              Search
	Mail                Mail
	Store               Store
}

// Load builds a Config from environment variables.
func Load() (*Config, error) {
	provider := strings.ToLower(getEnv("SEARCH_PROVIDER", ProviderPerplexity))

	c := &Config{
		BindAddr:            getEnv("API_BIND_ADDR", ":8080"),
		FrontendURL:         getEnv("FRONTEND_URL", ""),
		CronSecret:          getEnv("CRON_SECRET", ""),
		AutoRefreshInterval: getDuration("AUTO_REFRESH_INTERVAL", "5m"),
		TriggerLockTTL:      getDuration("TRIGGER_LOCK_TTL", "10m"),
		Search: Search{
			Provider:      provider,
			APIKey:        apiKeyFor(provider),
			Model:         getEnv("SEARCH_MODEL", ""),
			BaseURL:       getEnv("SEARCH_BASE_URL", ""),
			Delay:         getDuration("SEARCH_DELAY", "1s"),
			Terms:         DefaultSearchTerms,
			FailurePolicy: strings.ToLower(getEnv("SEARCH_FAILURE_POLICY", "skip")),
			EndpointURL:   endpointURL(getEnv("SEARCH_ENDPOINT_URL", getEnv("VERCEL_URL", ""))),
		},
		Mail: Mail{
			User:      getEnv("EMAIL_USER", ""),
			Password:  getEnv("EMAIL_PASSWORD", ""),
			Recipient: getEnv("NOTIFICATION_EMAIL", ""),
			SMTPHost:  getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:  getInt("SMTP_PORT", 587),
		},
		Store: Store{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			RedisURL:    getEnv("REDIS_URL", ""),
		},
	}

	if raw := getEnv("SEARCH_TERMS", ""); raw != "" {
		c.Search.Terms = splitAndTrim(raw)
	}

	switch c.Search.Provider {
	case ProviderPerplexity, ProviderOpenAI, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("SEARCH_PROVIDER %q is not supported", c.Search.Provider)
	}

	if c.Search.FailurePolicy != "skip" && c.Search.FailurePolicy != "abort" {
		return nil, fmt.Errorf("SEARCH_FAILURE_POLICY must be skip or abort")
	}
	if c.Search.Delay < 0 {
		return nil, fmt.Errorf("SEARCH_DELAY cannot be negative")
	}
	if len(c.Search.Terms) == 0 {
		return nil, fmt.Errorf("SEARCH_TERMS must contain at least one term")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis store")
		}
	default:
		return nil, fmt.Errorf("STORE_BACKEND %q is not supported", c.Store.Backend)
	}

	return c, nil
}

// MailConfigured reports whether digest emails can be sent.
func (c *Config) MailConfigured() bool {
	return c.Mail.User != "" && c.Mail.Password != "" && c.Mail.Recipient != ""
}

func apiKeyFor(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return getEnv("OPENAI_API_KEY", "")
	case ProviderAnthropic:
		return getEnv("ANTHROPIC_API_KEY", "")
	default:
		return getEnv("PERPLEXITY_API_KEY", "")
	}
}

// endpointURL adds https:// to bare hosts, which is how VERCEL_URL is set.
func endpointURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

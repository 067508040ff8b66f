package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// App captures process-level configuration. Every field comes from the
// environment so main stays lean.
type App struct {
	Addr string

	// BotToken authenticates outbound platform API calls.
	BotToken string
	// APIBaseURL overrides the platform API endpoint, mainly for tests.
	APIBaseURL string
	// WebhookSecret must match the secret token header on inbound updates.
	WebhookSecret string

	// PostgresURL selects the persistent store; empty means in-memory.
	PostgresURL string
	// RedisURL selects the entrance message id store; empty means in-memory.
	RedisURL string

	// KafkaBrokers and KafkaTopic enable the outcome event trail when set.
	KafkaBrokers []string
	KafkaTopic   string

	// Anonymize replaces display names with numeric ids in public text.
	Anonymize bool

	SchedulerWorkers   int
	SchedulerQueueSize int

	// DefaultSeconds is the countdown ceiling for chats without a scheme.
	DefaultSeconds int

	ShutdownTimeout time.Duration
}

// FromEnv builds the app config from environment variables.
func FromEnv() App {
	return App{
		Addr:               envOr("POLICR_ADDR", ":8080"),
		BotToken:           os.Getenv("POLICR_BOT_TOKEN"),
		APIBaseURL:         os.Getenv("POLICR_API_BASE_URL"),
		WebhookSecret:      os.Getenv("POLICR_WEBHOOK_SECRET"),
		PostgresURL:        os.Getenv("POLICR_POSTGRES_URL"),
		RedisURL:           os.Getenv("POLICR_REDIS_URL"),
		KafkaBrokers:       splitList(os.Getenv("POLICR_KAFKA_BROKERS")),
		KafkaTopic:         envOr("POLICR_KAFKA_TOPIC", "verification-outcomes"),
		Anonymize:          os.Getenv("POLICR_ANONYMIZE") == "true",
		SchedulerWorkers:   envInt("POLICR_SCHEDULER_WORKERS", 8),
		SchedulerQueueSize: envInt("POLICR_SCHEDULER_QUEUE", 256),
		DefaultSeconds:     envInt("POLICR_DEFAULT_SECONDS", 300),
		ShutdownTimeout:    10 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

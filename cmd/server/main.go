package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/btx638/policr-mini/internal/chat"
	"github.com/btx638/policr-mini/internal/delivery"
	"github.com/btx638/policr-mini/internal/entrance"
	"github.com/btx638/policr-mini/internal/i18n"
	"github.com/btx638/policr-mini/internal/kick"
	"github.com/btx638/policr-mini/internal/outcome"
	"github.com/btx638/policr-mini/internal/permission"
	"github.com/btx638/policr-mini/internal/platform/config"
	"github.com/btx638/policr-mini/internal/platform/httpserver"
	"github.com/btx638/policr-mini/internal/platform/logger"
	"github.com/btx638/policr-mini/internal/platform/metrics"
	platformredis "github.com/btx638/policr-mini/internal/platform/redis"
	"github.com/btx638/policr-mini/internal/scheduler"
	"github.com/btx638/policr-mini/internal/telegram"
	httptransport "github.com/btx638/policr-mini/internal/transport/http"
	"github.com/btx638/policr-mini/internal/verification/service"
	"github.com/btx638/policr-mini/internal/verification/store"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.App, log *slog.Logger) error {
	api, err := buildAPI(cfg)
	if err != nil {
		return err
	}

	var pool *pgxpool.Pool
	if cfg.PostgresURL != "" {
		pool, err = pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	rdb, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	verifications, schemes := buildVerificationStores(pool)
	chats := buildChatStore(pool)
	messageIDs := buildMessageIDStore(rdb)

	deliverer := delivery.New(api, delivery.WithLogger(log))
	jobs := scheduler.NewPool(cfg.SchedulerWorkers, cfg.SchedulerQueueSize, scheduler.WithLogger(log))
	translator := i18n.Default()

	permissions, err := permission.New(api, chats, permission.WithLogger(log))
	if err != nil {
		return err
	}
	kicker, err := kick.New(api, kick.WithLogger(log))
	if err != nil {
		return err
	}
	entranceAgg, err := entrance.New(verifications, messageIDs, deliverer, translator,
		entrance.WithLogger(log),
		entrance.WithAnonymize(cfg.Anonymize),
	)
	if err != nil {
		return err
	}

	recorder, err := buildRecorder(cfg, pool, log)
	if err != nil {
		return err
	}

	dispatcher, err := service.New(
		verifications, schemes, deliverer, jobs,
		permissions, kicker, entranceAgg, api, translator,
		service.WithLogger(log),
		service.WithRecorder(recorder),
		service.WithConfig(service.Config{
			Anonymize:      cfg.Anonymize,
			DefaultSeconds: cfg.DefaultSeconds,
		}),
	)
	if err != nil {
		return err
	}

	handler := httptransport.NewUpdateHandler(dispatcher, metrics.New(), log)
	router := httptransport.NewRouter(handler, httptransport.RouterConfig{
		WebhookSecret: cfg.WebhookSecret,
	}, log)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return jobs.Run(gctx) })
	g.Go(func() error { return recorder.Run(gctx) })
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func buildAPI(cfg config.App) (telegram.API, error) {
	opts := []telegram.ClientOption{}
	if cfg.APIBaseURL != "" {
		opts = append(opts, telegram.WithBaseURL(cfg.APIBaseURL))
	}
	return telegram.NewClient(cfg.BotToken, opts...)
}

func buildVerificationStores(pool *pgxpool.Pool) (store.VerificationStore, store.SchemeStore) {
	if pool != nil {
		return store.NewPostgres(pool), store.NewPostgresSchemes(pool)
	}
	return store.NewInMemory(), store.NewInMemorySchemes()
}

func buildChatStore(pool *pgxpool.Pool) chat.Store {
	if pool != nil {
		return chat.NewPostgres(pool)
	}
	return chat.NewInMemoryStore()
}

func buildMessageIDStore(rdb *platformredis.Client) entrance.MessageIDStore {
	if rdb != nil {
		return entrance.NewRedisMessageIDStore(rdb.Client)
	}
	return entrance.NewInMemoryMessageIDStore()
}

func buildRecorder(cfg config.App, pool *pgxpool.Pool, log *slog.Logger) (*outcome.Recorder, error) {
	var events outcome.Store
	if pool != nil {
		events = outcome.NewPostgresStore(pool)
	} else {
		events = outcome.NewInMemoryStore()
	}

	opts := []outcome.RecorderOption{outcome.WithLogger(log)}
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := outcome.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		opts = append(opts, outcome.WithPublisher(publisher))
	}
	return outcome.NewRecorder(events, cfg.SchedulerQueueSize, opts...), nil
}

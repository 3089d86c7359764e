package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"news-engine/cache"
	"news-engine/config"
	"news-engine/consumer"
	"news-engine/domain"
	"news-engine/driver"
	"news-engine/gateway"
	"news-engine/logger"
	"news-engine/scheduler"
	"news-engine/usecase"
	appOtel "news-engine/utils/otel"
)

// App holds all components of the news engine.
type App struct {
	httpServer    *http.Server
	scheduler     *scheduler.Scheduler
	redisConsumer *consumer.Consumer
	otelShutdown  appOtel.ShutdownFunc
}

// Run initializes all components and starts the engine.
// It blocks until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting news engine",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Load config ──
	appCfg := config.Load()
	logger.Logger.Info("substrate endpoints", "endpoints", appCfg.ConnectionInfo())

	// ── Drivers (infrastructure layer) ──
	msClient, err := initMeilisearchClient(ctx, appCfg)
	if err != nil {
		logger.Logger.Error("Failed to initialize Meilisearch", "err", err)
		return err
	}
	storeDriver := driver.NewMeilisearchDriver(msClient, appCfg.Engine.IndexName())
	providerDriver := initSearchProviderDriver(appCfg)

	// ── Gateways (anti-corruption layer) ──
	knowledgeStore := gateway.NewKnowledgeStoreGateway(storeDriver)
	searchProvider := gateway.NewSearchProviderGateway(providerDriver)

	if err := knowledgeStore.EnsureIndex(ctx); err != nil {
		logger.Logger.Error("Failed to ensure knowledge index", "err", err)
		return err
	}

	// ── Query cache ──
	queryCache, err := cache.NewQueryCache(config.CacheTTL, config.CacheMaxEntries)
	if err != nil {
		logger.Logger.Error("Failed to create query cache", "err", err)
		return err
	}

	// ── Use cases (application layer) ──
	dedup := usecase.NewDuplicateChecker(knowledgeStore, logger.Logger)
	dates := usecase.NewDateExtractor()
	ingestUsecase := usecase.NewIngestNewsUsecase(searchProvider, knowledgeStore, dedup, dates, logger.Logger)
	searchUsecase := usecase.NewSearchNewsUsecase(knowledgeStore, queryCache, logger.Logger)
	purgeUsecase := usecase.NewPurgeNewsUsecase(knowledgeStore, logger.Logger)

	// ── Topics ──
	topics, err := domain.NewTopicConfigs(appCfg.Engine.Topics, appCfg.Engine.FetchIntervalMinutes)
	if err != nil {
		logger.Logger.Warn("invalid topic configuration, using defaults", "err", err)
		topics = domain.DefaultTopics()
	}

	// ── Scheduler ──
	sched := scheduler.New(ingestUsecase, purgeUsecase, topics, appCfg.Engine.RetentionDays, logger.Logger)
	if err := sched.Start(ctx); err != nil {
		logger.Logger.Error("Failed to start scheduler", "err", err)
		return err
	}

	// ── Redis Streams Consumer ──
	var redisConsumer *consumer.Consumer
	consumerCfg := consumer.ConfigFromEnv()
	if consumerCfg.Enabled {
		eventHandler := consumer.NewFetchEventHandler(ingestUsecase, sched.TopicNames, logger.Logger)
		redisConsumer, err = consumer.NewConsumer(consumerCfg, eventHandler, logger.Logger)
		if err != nil {
			logger.Logger.Error("Failed to create Redis Streams consumer", "err", err)
		} else {
			if err := redisConsumer.Start(ctx); err != nil {
				logger.Logger.Error("Failed to start Redis Streams consumer", "err", err)
			} else {
				logger.Logger.Info("Redis Streams consumer started",
					"stream", consumerCfg.StreamKey,
					"group", consumerCfg.GroupName,
				)
			}
		}
	} else {
		logger.Logger.Info("Redis Streams consumer disabled")
	}

	// ── Server ──
	app := &App{
		httpServer:    newHTTPServer(searchUsecase, ingestUsecase, sched.TopicNames, appCfg, otelCfg),
		scheduler:     sched,
		redisConsumer: redisConsumer,
		otelShutdown:  otelShutdown,
	}

	go func() {
		logger.Logger.Info("http listen", "addr", appCfg.HTTP.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http", "err", err)
		}
	}()

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	if a.redisConsumer != nil {
		a.redisConsumer.Stop()
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}

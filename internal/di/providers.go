package di

import (
	"context"
	"fmt"
	"time"

	"RosterPulse/internal/domain/repository"
	"RosterPulse/internal/handler/api"
	internalrepo "RosterPulse/internal/repository"
	icache "RosterPulse/internal/service/cache"
	"RosterPulse/internal/service/directory"
	"RosterPulse/internal/service/sleeper"
	"RosterPulse/internal/usecase"
	pkgcache "RosterPulse/pkg/cache"
	pkgch "RosterPulse/pkg/clickhouse"
	"RosterPulse/pkg/config"
	pkgkafka "RosterPulse/pkg/kafka"
	applogger "RosterPulse/pkg/logger"
	"RosterPulse/pkg/metrics"
	"RosterPulse/pkg/queue"
	"RosterPulse/pkg/server"

	"github.com/redis/go-redis/v9"
)

// summaryTable is the ClickHouse table holding persisted leaderboards.
const summaryTable = "league_summaries"

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideTransactionSource creates the Sleeper API client.
func ProvideTransactionSource(cfg *config.Config, l *applogger.Logger) repository.TransactionSource {
	return sleeper.New(cfg.Sleeper.BaseURL, l,
		sleeper.WithRateLimit(cfg.Sleeper.MaxRPS, cfg.Sleeper.BurstRPS),
		sleeper.WithTimeout(cfg.Sleeper.Timeout),
	)
}

// ProvideDirectoryStore selects the snapshot store backend. Redis keeps
// the snapshot across restarts; memory is for single-process setups.
func ProvideDirectoryStore(cfg *config.Config) icache.BytesCache {
	if cfg.Directory.Backend == "redis" {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideDirectoryProvider creates the TTL-cached player directory.
func ProvideDirectoryProvider(
	cfg *config.Config,
	store icache.BytesCache,
	source repository.TransactionSource,
	l *applogger.Logger,
) repository.DirectoryProvider {
	return directory.New(store, source.GetPlayers, l,
		directory.WithTTL(cfg.Directory.TTL),
		directory.WithCacheKey(cfg.Directory.CacheKey),
	)
}

// ProvideTransactionCollector creates the per-league transaction collector.
func ProvideTransactionCollector(
	source repository.TransactionSource,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.TransactionCollector {
	return usecase.NewTransactionCollector(source, m, l)
}

// ProvideSummaryBuilder creates the collect-aggregate-rank engine.
func ProvideSummaryBuilder(
	collector *usecase.TransactionCollector,
	dir repository.DirectoryProvider,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.SummaryBuilder {
	return usecase.NewSummaryBuilder(collector, dir, m, l,
		usecase.WithWorkers(cfg.Batch.Workers),
	)
}

// ProvideClickHouseClient creates a ClickHouse client, nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s.%s ("+
				"league_id String, player_id String, name String, "+
				"adds UInt32, drops UInt32, trades UInt32, score UInt32, rank UInt32, "+
				"computed_at DateTime"+
				") ENGINE=MergeTree ORDER BY (league_id, computed_at, rank)",
			db, summaryTable,
		),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideSummaryStore creates ClickHouse summary storage, nil when disabled.
func ProvideSummaryStore(chClient *pkgch.Client, cfg *config.Config) repository.SummaryStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseSummaryStore(chClient.DB(), cfg.ClickHouse.Database+"."+summaryTable)
}

// ProvideKafkaProducer creates a Kafka producer, nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSummaryPublisher creates the Kafka summary publisher, nil when
// Kafka is disabled.
func ProvideSummaryPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SummaryPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSummaryPublisher(producer, cfg.Kafka.SummaryTopic)
}

// ProvideKafkaConsumer creates a Kafka consumer, nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.RefreshTopic == "" {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRefreshUsecase creates the batch refresh path.
func ProvideRefreshUsecase(
	builder *usecase.SummaryBuilder,
	source repository.TransactionSource,
	store repository.SummaryStore,
	pub repository.SummaryPublisher,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.RefreshUsecase {
	return usecase.NewRefreshUsecase(builder, source, store, pub, m, l, cfg.Leagues)
}

// ProvideRefreshHandler registers the handler for the refresh topic.
func ProvideRefreshHandler(
	cfg *config.Config,
	refresh *usecase.RefreshUsecase,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.KafkaRefreshHandler {
	return usecase.NewKafkaRefreshHandler(cfg.Kafka.RefreshTopic, refresh, m, l)
}

// ProvideRefreshQueue creates the Redis job queue with the refresh job
// registered, nil when Redis is not configured.
func ProvideRefreshQueue(
	cfg *config.Config,
	refresh *usecase.RefreshUsecase,
	l *applogger.Logger,
) *queue.RedisQueue {
	if cfg.Redis.Host == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	q := queue.NewRedisQueue(l,
		&queue.QueueConfig{
			Workers:    cfg.Batch.Workers,
			RetryLimit: 3,
			RetryDelay: 30 * time.Second,
		},
		client,
		queue.ModeProducerConsumer,
	)
	q.RegisterJob(usecase.NewRefreshJob(refresh))
	return q
}

// ProvideLiveCache creates the response cache for the live API, nil when
// disabled. Redis when configured, in-process memory otherwise.
func ProvideLiveCache(cfg *config.Config, l *applogger.Logger) pkgcache.Service {
	if !cfg.LiveCache.Enabled {
		return nil
	}
	if cfg.Redis.Host != "" {
		c, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Redis.Host),
			pkgcache.WithRedisPort(cfg.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Redis.Password),
			pkgcache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			l.Warn("live cache: redis unavailable, using memory", applogger.Error(err))
			return pkgcache.NewMemoryCache()
		}
		return pkgcache.NewLayeredCache(c)
	}
	return pkgcache.NewMemoryCache()
}

// ProvideHTTPHandler assembles the live API handler with the optional
// backends that are actually configured.
func ProvideHTTPHandler(
	l *applogger.Logger,
	source repository.TransactionSource,
	builder *usecase.SummaryBuilder,
	cfg *config.Config,
	store repository.SummaryStore,
	live pkgcache.Service,
	jobs *queue.RedisQueue,
) *api.LeaderboardEchoHandler {
	opts := make([]api.HandlerOption, 0, 3)
	if store != nil {
		opts = append(opts, api.WithSummaryStore(store))
	}
	if live != nil {
		opts = append(opts, api.WithResponseCache(live, cfg.LiveCache.TTL))
	}
	if jobs != nil {
		opts = append(opts, api.WithRefreshQueue(jobs))
	}
	return api.NewLeaderboardEchoHandler(l, source, builder, cfg.Leagues, opts...)
}

// logPublisher adapts the Kafka producer to the log collector's publisher.
type logPublisher struct {
	p *pkgkafka.Producer
}

func (lp logPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return lp.p.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.LeaderboardEchoHandler,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaRefreshHandler,
	jobs *queue.RedisQueue,
	refresh *usecase.RefreshUsecase,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	pub repository.SummaryPublisher,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	if producer != nil && cfg.Kafka.LogTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      logPublisher{p: producer},
		})
	}
	return server.New(cfg, l, handler, consumer, kh, jobs, refresh, chClient, pub)
}

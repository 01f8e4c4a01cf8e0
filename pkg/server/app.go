package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RosterPulse/internal/domain/models"
	drepo "RosterPulse/internal/domain/repository"
	"RosterPulse/internal/usecase"
	pkgch "RosterPulse/pkg/clickhouse"
	"RosterPulse/pkg/config"
	xhttp "RosterPulse/pkg/http"
	pkgkafka "RosterPulse/pkg/kafka"
	applogger "RosterPulse/pkg/logger"
	"RosterPulse/pkg/queue"
)

// App encapsulates the entire application lifecycle: the HTTP API, the
// optional Kafka consumer, the optional Redis job queue, and the periodic
// batch refresh.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	jobs       *queue.RedisQueue
	refresh    *usecase.RefreshUsecase
	chClient   *pkgch.Client
	pub        drepo.SummaryPublisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. consumer, jobs,
// chClient and pub may be nil when the corresponding backend is disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	jobs *queue.RedisQueue,
	refresh *usecase.RefreshUsecase,
	chClient *pkgch.Client,
	pub drepo.SummaryPublisher,
) *App {
	return &App{
		cfg:      cfg,
		logger:   l,
		handler:  handler,
		consumer: consumer,
		kh:       kh,
		jobs:     jobs,
		refresh:  refresh,
		chClient: chClient,
		pub:      pub,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if a.jobs != nil {
		if err := a.jobs.Start(); err != nil {
			a.logger.Error("job queue start error", applogger.Error(err))
			a.jobs = nil
		}
	}

	if a.cfg.Batch.Enabled {
		go a.batchLoop(ctx)
		a.logger.Info("batch refresh scheduled",
			applogger.String("interval", a.cfg.Batch.Interval.String()),
			applogger.Int("leagues", len(a.cfg.Leagues)),
		)
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// RunOnce runs a single batch refresh and exits (one-shot mode).
func (a *App) RunOnce(ctx context.Context) error {
	summaries, err := a.refresh.Refresh(ctx, nil)
	if err != nil {
		return err
	}

	failed := 0
	for _, s := range summaries {
		if s.Failed() {
			failed++
		}
	}
	a.logger.Info("one-shot refresh done",
		applogger.Int("leagues", len(summaries)),
		applogger.Int("failed", failed),
	)
	return a.closeResources()
}

// batchLoop runs a refresh immediately, then on every interval tick. When
// the job queue is available the run goes through it so retries and the
// dead letter queue apply.
func (a *App) batchLoop(ctx context.Context) {
	run := func() {
		if a.jobs != nil {
			if err := a.jobs.PublishMessage(ctx, usecase.RefreshJobType, &models.RefreshRequest{}); err == nil {
				return
			}
			a.logger.Warn("batch: enqueue failed, running inline")
		}
		if _, err := a.refresh.Refresh(ctx, nil); err != nil {
			a.logger.Error("batch refresh error", applogger.Error(err))
		}
	}

	run()
	ticker := time.NewTicker(a.cfg.Batch.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.jobs != nil {
		if err := a.jobs.Stop(shutdownCtx); err != nil {
			a.logger.Warn("job queue stop error", applogger.Error(err))
		}
	}

	if err := a.closeResources(); err != nil {
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}

func (a *App) closeResources() error {
	if a.pub != nil {
		if err := a.pub.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	return nil
}

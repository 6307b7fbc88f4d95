package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/config"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/logging"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/outbox"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence/postgres"
)

const defaultDLQBatchSize = 50

func main() {
	cfg := config.Load()
	logging.Setup(logging.SetupParams{
		FileName:   cfg.LogFile,
		ToStdout:   cfg.LogStdout,
		Level:      cfg.LogLevel,
		FormatJSON: cfg.LogJSON,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if cfg.PostgresMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalf("failed to migrate postgres: %v", err)
		}
	}

	producer := outbox.NewKafkaProducer(cfg.KafkaBrokers, outbox.WithProducerLogger(log.WithField("component", "kafka-producer")))
	defer producer.Close()

	registry := outbox.NewSchemaRegistryClient(cfg.SchemaRegistryURL)
	dispatcher := outbox.NewDispatcher(pool, producer, registry, cfg.OutboxPollInterval, cfg.OutboxBatchSize,
		outbox.WithDispatcherLogger(log.WithField("component", "dispatcher")))
	manager := outbox.NewDLQManager(pool, cfg.DLQMaxRetries, cfg.DLQBaseDelay)

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}
	go func() {
		log.WithField("address", cfg.MetricsAddress).Info("relay metrics listening")
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server error: %v", err)
		}
	}()

	go dispatcher.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	runDLQ(ctx, manager, cfg, stop)
	cancel()
	dispatcher.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("metrics server shutdown error: %v", err)
	}
}

// runDLQ polls the dead-letter table until a signal arrives.
func runDLQ(ctx context.Context, manager *outbox.DLQManager, cfg config.Config, stop <-chan os.Signal) {
	ticker := time.NewTicker(cfg.DLQPollInterval)
	defer ticker.Stop()

	logger := log.WithField("component", "dlq")
	logger.WithFields(log.Fields{"interval": cfg.DLQPollInterval, "maxRetries": cfg.DLQMaxRetries}).Info("dlq manager started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			logger.Info("shutdown requested")
			return
		case <-ticker.C:
			processed, err := manager.RunOnce(ctx, defaultDLQBatchSize)
			if err != nil {
				logger.Errorf("dlq run failed: %v", err)
			} else if processed > 0 {
				logger.Infof("processed %d entries", processed)
			}
		}
	}
}

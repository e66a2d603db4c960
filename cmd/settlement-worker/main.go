package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	predictionsrepo "github.com/radieske/footy-predictor/internal/predictions/repo"
	"github.com/radieske/footy-predictor/internal/predictions/settler"
	"github.com/radieske/footy-predictor/internal/shared/config"
	"github.com/radieske/footy-predictor/internal/shared/db"
	"github.com/radieske/footy-predictor/internal/shared/kafka"
	"github.com/radieske/footy-predictor/internal/shared/logger"
	"github.com/radieske/footy-predictor/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicMatchResults, "settlement-worker")
	defer reader.Close()

	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicPredictionSettled)
	defer settledWriter.Close()

	dlqWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchResultsDLQ)
	defer dlqWriter.Close()

	// Métricas Prometheus da liquidação
	consumed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_messages_consumed_total",
		Help: "mensagens consumidas do tópico match_results",
	})
	settled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_predictions_settled_total",
		Help: "palpites liquidados",
	})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_errors_total",
		Help: "erros por fase",
	}, []string{"phase"})
	prometheus.MustRegister(consumed, settled, errorsBy)

	worker := &settler.Settler{
		Log:        log,
		Reader:     reader,
		Store:      predictionsrepo.NewPostgres(pg),
		Publisher:  settledWriter,
		DLQ:        dlqWriter,
		OnConsumed: func() { consumed.Inc() },
		OnSettled:  func(n int) { settled.Add(float64(n)) },
		OnError:    func(phase string) { errorsBy.WithLabelValues(phase).Inc() },
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("settlement-worker started")
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("worker stopped with error", zap.Error(err))
	}
	log.Info("settlement-worker stopped")
}

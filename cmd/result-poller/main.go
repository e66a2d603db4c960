package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/footballdata"
	"github.com/radieske/footy-predictor/internal/result-poller/publisher"
	"github.com/radieske/footy-predictor/internal/result-poller/service"
	"github.com/radieske/footy-predictor/internal/shared/cache"
	"github.com/radieske/footy-predictor/internal/shared/config"
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

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	provider := footballdata.New(cfg.FootballDataURL, cfg.FootballDataToken)
	provider.Quota = footballdata.NewQuota(redisClient, cfg.ProviderQuotaPerMin)

	pub := publisher.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.TopicMatchResults, log)
	defer pub.Close()

	// Métricas Prometheus do poller
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poller_results_published_total",
		Help: "resultados publicados no tópico match_results",
	})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poller_errors_total",
		Help: "erros por fase",
	}, []string{"phase"})
	prometheus.MustRegister(published, errorsBy)

	poller := &service.Poller{
		Provider:    provider,
		Publisher:   pub,
		Competition: cfg.CompetitionCode,
		Interval:    cfg.PollInterval,
		Log:         log,
		OnPublished: func() { published.Inc() },
		OnError:     func(phase string) { errorsBy.WithLabelValues(phase).Inc() },
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	poller.Run(ctx)
	log.Info("result-poller stopped")
}

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/shared/config"
	"github.com/radieske/footy-predictor/internal/shared/logger"
	"github.com/radieske/footy-predictor/internal/shared/metrics"
	"github.com/radieske/footy-predictor/internal/upstream-simulator/sim"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	matchesFinished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upstream_matches_finished_total",
		Help: "partidas simuladas finalizadas",
	})
	prometheus.MustRegister(matchesFinished)

	simulator := sim.New(log, cfg.CompetitionCode, func() { matchesFinished.Inc() })

	// Finaliza uma partida agendada por minuto pra alimentar o poller.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			simulator.Advance()
		}
	}()

	metrics.StartMetricsServer(cfg.MetricsPort, nil)

	addr := ":" + cfg.HTTPPort
	log.Info("upstream simulator running", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, simulator.Router()); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}

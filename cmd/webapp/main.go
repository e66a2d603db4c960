package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/client"
	"github.com/radieske/footy-predictor/internal/matchview"
	"github.com/radieske/footy-predictor/internal/shared/config"
	"github.com/radieske/footy-predictor/internal/shared/logger"
	"github.com/radieske/footy-predictor/internal/shared/metrics"
	"github.com/radieske/footy-predictor/internal/webapp"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	// O webapp é anônimo: consome só os endpoints públicos da API.
	apiClient := client.New(cfg.APIBaseURL, nil)

	view := matchview.New(apiClient, log)

	// Carga única na subida; falha fica registrada na própria tela.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	view.Load(loadCtx)
	loadCancel()

	srv := &webapp.Server{Log: log, View: view}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return apiClient.Health(ctx)
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("webapp listening", zap.String("addr", httpSrv.Addr))
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
	log.Info("webapp stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/api"
	"github.com/radieske/footy-predictor/internal/footballdata"
	"github.com/radieske/footy-predictor/internal/identity"
	identityrepo "github.com/radieske/footy-predictor/internal/identity/repo"
	predictionsrepo "github.com/radieske/footy-predictor/internal/predictions/repo"
	"github.com/radieske/footy-predictor/internal/predictor"
	"github.com/radieske/footy-predictor/internal/shared/cache"
	"github.com/radieske/footy-predictor/internal/shared/config"
	"github.com/radieske/footy-predictor/internal/shared/db"
	"github.com/radieske/footy-predictor/internal/shared/logger"
	"github.com/radieske/footy-predictor/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com db Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	// conecta com cache Redis (cota de requisições ao provedor)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// cliente do provedor com cota do free tier
	provider := footballdata.New(cfg.FootballDataURL, cfg.FootballDataToken)
	provider.Quota = footballdata.NewQuota(redisClient, cfg.ProviderQuotaPerMin)

	engine := predictor.NewEngine(provider, cfg.CompetitionCode, log)

	tokens := identity.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	ident := identity.NewService(identityrepo.NewPostgres(pg), tokens)
	preds := predictionsrepo.NewPostgres(pg)

	srv := api.NewServer(log, provider, engine, ident, preds, tokens, cfg.CompetitionCode)

	// servidor de métricas e health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
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

	log.Info("api listening", zap.String("addr", httpSrv.Addr))
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
	log.Info("api stopped")
}

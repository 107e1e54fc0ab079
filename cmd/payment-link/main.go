package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/maavergroup/payos-link/internal/config"
	d "github.com/maavergroup/payos-link/internal/domain"
	"github.com/maavergroup/payos-link/internal/gateway"
	h "github.com/maavergroup/payos-link/internal/http"
	"github.com/maavergroup/payos-link/internal/ordercode"
	"github.com/maavergroup/payos-link/internal/service"
	"github.com/maavergroup/payos-link/internal/tracing"
	"github.com/maavergroup/payos-link/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("service stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("server exited")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown error", "err", err)
		}
	}()

	codes, closeCodes, err := newAllocator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCodes()

	payos := gateway.NewPayOSClient(gateway.Credentials{
		ClientID:    cfg.ClientID,
		APIKey:      cfg.APIKey,
		ChecksumKey: cfg.ChecksumKey,
	}, cfg.PayOSBaseURL, nil)
	client := gateway.NewBreakerClient(payos, cfg.BreakerMaxFailures, cfg.BreakerOpenTimeout, log)

	svc := service.NewPaymentLinkService(
		service.NewValidator(),
		service.NewAggregator(codes, time.Now),
		service.NewGatewayAdapter(client, cfg.ClientDomain, cfg.GatewayTimeout, log),
		log,
	)

	router := h.NewRouter(h.RouterConfig{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
	}, h.NewPaymentLinkHandler(svc, cfg.MaxRequestBodySize, log), log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout(cfg.GatewayTimeout),
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("payment link service starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// writeTimeout leaves room to answer after a bounded gateway call. An
// unbounded gateway call gets an unbounded write.
func writeTimeout(gatewayTimeout time.Duration) time.Duration {
	if gatewayTimeout <= 0 {
		return 0
	}
	return gatewayTimeout + 10*time.Second
}

func newAllocator(ctx context.Context, cfg *config.Config, log *slog.Logger) (ordercode.Allocator, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("order codes allocated in process")
		return ordercode.NewMemoryAllocator(), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, nil, err
	}
	log.Info("order codes reserved in redis", "addr", cfg.RedisAddr)

	// Reservations outlive the link so a code is not reissued while still payable.
	ttl := 2 * d.LinkLifetime
	return ordercode.NewRedisAllocator(redisClient, ttl, log), func() { redisClient.Close() }, nil
}

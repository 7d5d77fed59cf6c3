package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/clinicdesk/appointment-service/internal/api"
	"github.com/clinicdesk/appointment-service/internal/appointment"
	"github.com/clinicdesk/appointment-service/internal/config"
	"github.com/clinicdesk/appointment-service/internal/db"
	"github.com/clinicdesk/appointment-service/internal/logger"
	"github.com/clinicdesk/appointment-service/internal/notify"
	redisclient "github.com/clinicdesk/appointment-service/internal/redis"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		zlog.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	zlog.Info("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		zlog.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			zlog.Warn("error closing redis", zap.Error(err))
		}
	}()
	zlog.Info("connected to Redis")

	// Booking confirmations go to the broker when one is configured,
	// otherwise to the log.
	var notifier notify.Notifier
	if cfg.RabbitMQURL != "" {
		mq, err := notify.NewRabbitMQNotifier(cfg.RabbitMQURL, cfg.NotifyQueue)
		if err != nil {
			zlog.Fatal("rabbitmq connection error", zap.Error(err))
		}
		defer func() {
			if err := mq.Close(); err != nil {
				zlog.Warn("error closing rabbitmq", zap.Error(err))
			}
		}()
		notifier = mq
		zlog.Info("connected to RabbitMQ", zap.String("queue", cfg.NotifyQueue))
	} else {
		notifier = notify.NewLogNotifier(zlog)
		zlog.Info("no RABBITMQ_URL set, booking confirmations will be logged")
	}

	repo := appointment.NewPgRepository(pgPool)
	locker := redisclient.NewRedisDoctorDayLocker(rdb, cfg.LockTTL)
	svc := appointment.NewService(repo, locker, notifier, zlog)

	router := api.NewRouter(api.RouterConfig{
		Service: svc,
		PgPool:  pgPool,
		Redis:   rdb,
		Logger:  zlog,
		Env:     cfg.Env,
		Version: version,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		zlog.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()

	zlog.Info("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"motor-monitor/cache"
	"motor-monitor/confs"
	"motor-monitor/db"
	"motor-monitor/repositories"
	"motor-monitor/server"
	"motor-monitor/services"
	"motor-monitor/usecases"
	"motor-monitor/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		slog.Error("error loading config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("motor monitor stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("motor monitor stopped")
}

func run(ctx context.Context, cfg confs.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// connect to database
	database, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.SeedData {
		if err := db.Seed(ctx, database); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	if len(cfg.SessionSecret) == 0 {
		logger.Warn("SESSION_SECRET not set, using a random secret; sessions will not survive a restart")
		cfg.SessionSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.SessionSecret); err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
	}

	motorRepo := repositories.NewMotorPgRepository(database)
	readingRepo := repositories.NewSensorReadingPgRepository(database)

	// live snapshot store
	var (
		liveRepo  repositories.LiveReadingRepository
		liveCache *cache.LiveCache
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			return fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("using redis for live snapshots", "addr", cfg.RedisAddr)
		liveRepo = repositories.NewLiveReadingRedisRepository(rdb)
	} else {
		liveCache = cache.NewLiveCache()
		liveRepo = liveCache
	}

	hub := ws.NewManager(logger)
	sinks := []services.Sink{hub, services.SinkFunc(liveRepo.Save)}

	if cfg.MQTTBroker != "" {
		publisher, err := services.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}

	var wg sync.WaitGroup
	var recorder *services.ReadingRecorder
	if cfg.PersistReadings {
		recorder = services.NewReadingRecorder(readingRepo, cfg.PersistInterval, logger)
		sinks = append(sinks, recorder)
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder.Run(ctx)
		}()
	}

	sessions := cache.NewSessionStore(cfg.SessionTTL)
	sessions.StartJanitor(ctx, time.Minute)

	auth, err := usecases.NewAuthUseCase(repositories.NewUserPgRepository(database), sessions, cfg.SessionSecret)
	if err != nil {
		return err
	}
	dashboard := usecases.NewDashboardUseCase(
		repositories.NewZonePgRepository(database),
		motorRepo,
		readingRepo,
		liveRepo,
	)

	simulator := services.NewSimulator(motorRepo, cfg.SimulatorInterval, logger, sinks...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		simulator.Run(ctx)
	}()

	srv, err := server.NewServer(cfg, server.Deps{
		Dashboard: dashboard,
		Auth:      auth,
		Hub:       hub,
		LiveCache: liveCache,
		Recorder:  recorder,
	}, logger)
	if err != nil {
		return err
	}

	err = srv.Start(ctx)
	// stop the loop and recorder and let them finish before the store closes
	cancel()
	wg.Wait()
	return err
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/waitlight/vod-pipeline/internal/config"
	videoRepository "github.com/waitlight/vod-pipeline/internal/videos/repository"
	"github.com/waitlight/vod-pipeline/internal/videos/transcoder"
	videoUsecase "github.com/waitlight/vod-pipeline/internal/videos/usecase"
	"github.com/waitlight/vod-pipeline/internal/worker"
	"github.com/waitlight/vod-pipeline/pkg/db/postgres"
	clientRedis "github.com/waitlight/vod-pipeline/pkg/db/redis"
	"github.com/waitlight/vod-pipeline/pkg/logger"
)

func main() {
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	vRepo := videoRepository.NewVideoRepo(psqlDB)
	vRedisRepo := videoRepository.NewVideoRedisRepo(redisClient, cfg)
	proxyGen := transcoder.NewFFmpegProxyGenerator(cfg, appLogger)
	segmenter := transcoder.NewFFmpegSegmenter(appLogger)
	videoUC := videoUsecase.NewVideoUseCase(cfg, vRepo, vRedisRepo, proxyGen, segmenter, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Infof("Shutting down workers")
		cancel()
	}()

	w := worker.NewWorker(cfg, appLogger, vRedisRepo, videoUC)
	w.Start(ctx)
	w.Wait()
}

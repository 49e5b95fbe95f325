package server

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/waitlight/vod-pipeline/internal/middleware"
	videoHttp "github.com/waitlight/vod-pipeline/internal/videos/delivery/http"
	videoRepository "github.com/waitlight/vod-pipeline/internal/videos/repository"
	"github.com/waitlight/vod-pipeline/internal/videos/transcoder"
	videoUsecase "github.com/waitlight/vod-pipeline/internal/videos/usecase"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	if err := os.MkdirAll(utils.ResolvePath(s.cfg.Storage.Root), 0755); err != nil {
		return err
	}

	vRepo := videoRepository.NewVideoRepo(s.db)
	vRedisRepo := videoRepository.NewVideoRedisRepo(s.redisClient, s.cfg)
	proxyGen := transcoder.NewFFmpegProxyGenerator(s.cfg, s.logger)
	segmenter := transcoder.NewFFmpegSegmenter(s.logger)

	videoUC := videoUsecase.NewVideoUseCase(s.cfg, vRepo, vRedisRepo, proxyGen, segmenter, s.logger)
	videoHandlers := videoHttp.NewVideoHandler(s.cfg, videoUC)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	videoGroup := v1.Group("/videos")
	mediaGroup := e.Group("/media")

	videoHttp.MapVideoRoutes(videoGroup, videoHandlers, mw)
	videoHttp.MapMediaRoutes(mediaGroup, videoHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}

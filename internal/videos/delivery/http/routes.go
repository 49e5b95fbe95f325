package http

import (
	"github.com/labstack/echo/v4"
	"github.com/waitlight/vod-pipeline/internal/middleware"
	"github.com/waitlight/vod-pipeline/internal/videos"
)

func MapVideoRoutes(videoGroup *echo.Group, h videos.Handler, mw *middleware.MiddlewareManager) {
	videoGroup.Use(mw.RequestLoggerMiddleware)
	videoGroup.POST("", h.UploadVideo())
	videoGroup.GET("", h.ListVideos())
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.DELETE("/:video_id", h.DeleteVideo())
}

func MapMediaRoutes(mediaGroup *echo.Group, h videos.Handler) {
	mediaGroup.GET("/:video_id/:filename", h.ServeMedia())
}

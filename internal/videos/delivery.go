package videos

import "github.com/labstack/echo/v4"

type Handler interface {
	UploadVideo() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	DeleteVideo() echo.HandlerFunc
	ServeMedia() echo.HandlerFunc
}

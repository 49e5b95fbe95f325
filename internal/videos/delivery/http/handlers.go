package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/waitlight/vod-pipeline/internal/config"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/internal/videos"
	"github.com/waitlight/vod-pipeline/pkg/httpErrors"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

type videoHandler struct {
	cfg     *config.Config
	videoUC videos.UseCase
}

func NewVideoHandler(cfg *config.Config, videoUC videos.UseCase) videos.Handler {
	return &videoHandler{
		cfg:     cfg,
		videoUC: videoUC,
	}
}

func (h *videoHandler) UploadVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewInvalidRequestError("File is required")))
		}
		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewInvalidRequestError("Failed to read upload")))
		}
		defer file.Close()

		input := &models.VideoUploadInput{
			File:        file,
			Title:       c.FormValue("title"),
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
		}
		video, err := h.videoUC.UploadVideo(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusCreated, video.ToListItem())
	}
}

func (h *videoHandler) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		list, err := h.videoUC.ListVideos(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *videoHandler) GetVideoByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewInvalidRequestError("Invalid video id")))
		}
		detail, err := h.videoUC.GetVideoDetail(c.Request().Context(), videoID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, detail)
	}
}

func (h *videoHandler) DeleteVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewInvalidRequestError("Invalid video id")))
		}
		if err := h.videoUC.DeleteVideo(c.Request().Context(), videoID); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ServeMedia streams manifest and segment files from a video's hls directory.
func (h *videoHandler) ServeMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewInvalidRequestError("Invalid video id")))
		}
		filename := filepath.Base(c.Param("filename"))
		if filename == "." || strings.HasPrefix(filename, "..") {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewInvalidRequestError("Invalid media file")))
		}
		mediaPath := filepath.Join(utils.ResolvePath(h.cfg.Storage.Root), videoID.String(), "hls", filename)
		return c.File(mediaPath)
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waitlight/vod-pipeline/internal/config"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/pkg/httpErrors"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

var mp4Header = []byte{0x00, 0x00, 0x00, 0x12, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}

type fakeUseCase struct {
	uploadIn     *models.VideoUploadInput
	uploadVideo  *models.VideoRecord
	uploadErr    error
	list         *models.VideoList
	detail       *models.VideoDetail
	detailErr    error
	deleteErr    error
	deletedID    uuid.UUID
	processedIDs []uuid.UUID
}

func (f *fakeUseCase) UploadVideo(ctx context.Context, input *models.VideoUploadInput) (*models.VideoRecord, error) {
	f.uploadIn = input
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadVideo, nil
}

func (f *fakeUseCase) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	return f.list, nil
}

func (f *fakeUseCase) GetVideoDetail(ctx context.Context, videoID uuid.UUID) (*models.VideoDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeUseCase) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	f.deletedID = videoID
	return f.deleteErr
}

func (f *fakeUseCase) ProcessVideo(ctx context.Context, videoID uuid.UUID) error {
	f.processedIDs = append(f.processedIDs, videoID)
	return nil
}

func multipartUpload(t *testing.T, title, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if title != "" {
		require.NoError(t, writer.WriteField("title", title))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newHandlerFixture() (*fakeUseCase, *videoHandler) {
	cfg := &config.Config{}
	cfg.Storage.Root = "data/videos"
	uc := &fakeUseCase{}
	return uc, NewVideoHandler(cfg, uc).(*videoHandler)
}

func TestUploadVideoHandler(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		uc, h := newHandlerFixture()
		uc.uploadVideo = &models.VideoRecord{
			VideoID:   uuid.New(),
			Title:     "Demo",
			Status:    models.StatusUploading,
			SizeBytes: 12,
			CreatedAt: time.Now(),
		}

		body, contentType := multipartUpload(t, "Demo", "clip.mp4", mp4Header)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, h.UploadVideo()(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var item models.VideoListItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
		assert.Equal(t, uc.uploadVideo.VideoID, item.VideoID)
		assert.Equal(t, models.StatusUploading, item.Status)

		require.NotNil(t, uc.uploadIn)
		assert.Equal(t, "Demo", uc.uploadIn.Title)
		assert.Equal(t, "clip.mp4", uc.uploadIn.Filename)
		assert.Equal(t, int64(12), uc.uploadIn.Size)
	})

	t.Run("missing file part", func(t *testing.T) {
		_, h := newHandlerFixture()

		body, contentType := multipartUpload(t, "Demo", "", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, h.UploadVideo()(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), httpErrors.CodeInvalidRequest)
	})

	t.Run("usecase rejection is passed through", func(t *testing.T) {
		uc, h := newHandlerFixture()
		uc.uploadErr = httpErrors.NewUploadTooLargeError()

		body, contentType := multipartUpload(t, "Demo", "clip.mp4", mp4Header)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, h.UploadVideo()(c))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Contains(t, rec.Body.String(), httpErrors.CodeUploadTooLarge)
	})
}

func TestListVideosHandler(t *testing.T) {
	t.Parallel()

	uc, h := newHandlerFixture()
	uc.list = &models.VideoList{
		Videos:     []*models.VideoListItem{{VideoID: uuid.New(), Title: "Demo", Status: models.StatusReady}},
		TotalCount: 1,
		PageSize:   50,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.ListVideos()(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var list models.VideoList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.TotalCount)
	require.Len(t, list.Videos, 1)
}

func TestGetVideoByIDHandler(t *testing.T) {
	t.Parallel()

	t.Run("bad id", func(t *testing.T) {
		_, h := newHandlerFixture()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("video_id")
		c.SetParamValues("not-a-uuid")

		require.NoError(t, h.GetVideoByID()(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		uc, h := newHandlerFixture()
		uc.detailErr = httpErrors.NewHlsNotReadyError()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("video_id")
		c.SetParamValues(uuid.NewString())

		require.NoError(t, h.GetVideoByID()(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), httpErrors.CodeHlsNotReady)
	})

	t.Run("ready", func(t *testing.T) {
		uc, h := newHandlerFixture()
		id := uuid.New()
		uc.detail = &models.VideoDetail{
			VideoID:     id,
			Title:       "Demo",
			Status:      models.StatusReady,
			ManifestURL: "http://localhost:8080/media/" + id.String() + "/index.m3u8",
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("video_id")
		c.SetParamValues(id.String())

		require.NoError(t, h.GetVideoByID()(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var detail models.VideoDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, id, detail.VideoID)
		assert.Contains(t, detail.ManifestURL, "index.m3u8")
	})
}

func TestDeleteVideoHandler(t *testing.T) {
	t.Parallel()

	t.Run("no content on success", func(t *testing.T) {
		uc, h := newHandlerFixture()
		id := uuid.New()

		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("video_id")
		c.SetParamValues(id.String())

		require.NoError(t, h.DeleteVideo()(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, id, uc.deletedID)
	})

	t.Run("not found", func(t *testing.T) {
		uc, h := newHandlerFixture()
		uc.deleteErr = httpErrors.NewVideoNotFoundError()

		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("video_id")
		c.SetParamValues(uuid.NewString())

		require.NoError(t, h.DeleteVideo()(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), httpErrors.CodeVideoNotFound)
	})
}

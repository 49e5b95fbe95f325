package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/waitlight/vod-pipeline/internal/config"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/internal/videos"
	"github.com/waitlight/vod-pipeline/pkg/httpErrors"
	"github.com/waitlight/vod-pipeline/pkg/logger"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

const (
	SegmentPattern        = "seg_%05d.ts"
	ManifestFilename      = "index.m3u8"
	proxyFilename         = "proxy.mp4"
	hlsDirname            = "hls"
	defaultSegmentSeconds = 2
	mp4HeaderLen          = 12
)

type videoUC struct {
	cfg       *config.Config
	videoRepo videos.Repository
	redisRepo videos.RedisRepository
	proxyGen  videos.ProxyGenerator
	segmenter videos.Segmenter
	logger    logger.Logger

	inflightMu sync.Mutex
	inflight   map[uuid.UUID]struct{}
}

func NewVideoUseCase(
	cfg *config.Config,
	videoRepo videos.Repository,
	redisRepo videos.RedisRepository,
	proxyGen videos.ProxyGenerator,
	segmenter videos.Segmenter,
	log logger.Logger,
) videos.UseCase {
	return &videoUC{
		cfg:       cfg,
		videoRepo: videoRepo,
		redisRepo: redisRepo,
		proxyGen:  proxyGen,
		segmenter: segmenter,
		logger:    log,
		inflight:  make(map[uuid.UUID]struct{}),
	}
}

func (u *videoUC) UploadVideo(ctx context.Context, input *models.VideoUploadInput) (*models.VideoRecord, error) {
	header, err := u.validateUpload(input)
	if err != nil {
		return nil, err
	}

	video := &models.VideoRecord{
		Title:            strings.TrimSpace(input.Title),
		OriginalFilename: utils.SanitizeFilename(input.Filename),
		SizeBytes:        input.Size,
		Status:           models.StatusUploading,
		StoragePath:      models.StoragePathPending,
	}
	if err := utils.ValidateStruct(ctx, video); err != nil {
		return nil, httpErrors.NewInvalidRequestError(err.Error())
	}
	created, err := u.videoRepo.CreateVideo(ctx, video)
	if err != nil {
		u.logger.Errorf("UploadVideo - CreateVideo error: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}

	target := filepath.Join(u.resolveStorageRoot(), created.VideoID.String(), created.OriginalFilename)
	if err := u.storeUpload(target, header, input.File); err != nil {
		u.logger.Errorf("UploadVideo - storeUpload error: %v", err)
		created.MarkFailed(httpErrors.CodeStorageIOError, err.Error())
		if _, saveErr := u.videoRepo.UpdateVideo(ctx, created); saveErr != nil {
			u.logger.Errorf("UploadVideo - failed to persist FAILED status: %v", saveErr)
		}
		// The record stays behind in FAILED while the call itself errors.
		return nil, httpErrors.NewStorageIOError(err.Error())
	}

	created.StoragePath = target
	created.ErrorCode = nil
	created.ErrorMessage = nil
	persisted, err := u.videoRepo.UpdateVideo(ctx, created)
	if err != nil {
		u.logger.Errorf("UploadVideo - UpdateVideo error: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}

	job := &models.TranscodeJob{
		JobID:      uuid.New().String(),
		VideoID:    persisted.VideoID,
		EnqueuedAt: time.Now(),
	}
	if err = u.redisRepo.EnqueueJob(ctx, u.cfg.Redis.JobQueueKey, job); err != nil {
		u.logger.Errorf("UploadVideo - EnqueueJob error: %v", err)
		persisted.MarkFailed(httpErrors.CodeProcessingFailed, "failed to schedule processing")
		if _, saveErr := u.videoRepo.UpdateVideo(ctx, persisted); saveErr != nil {
			u.logger.Errorf("UploadVideo - failed to persist FAILED status: %v", saveErr)
		}
		return nil, httpErrors.NewInternalServerError(err.Error())
	}

	u.logger.Infof("Uploaded video %s (%d bytes), processing scheduled", persisted.VideoID, persisted.SizeBytes)
	return persisted, nil
}

// validateUpload enforces the upload preconditions and returns the first 12
// bytes of the payload so they are not consumed twice.
func (u *videoUC) validateUpload(input *models.VideoUploadInput) ([]byte, error) {
	if input == nil || input.File == nil || input.Size == 0 {
		return nil, httpErrors.NewInvalidRequestError("File is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, httpErrors.NewInvalidRequestError("Title is required")
	}
	maxBytes := u.cfg.Storage.UploadMaxBytes
	if maxBytes > 0 && input.Size > maxBytes {
		return nil, httpErrors.NewUploadTooLargeError()
	}

	filename := utils.SanitizeFilename(input.Filename)
	contentTypeOk := strings.HasPrefix(strings.ToLower(input.ContentType), "video/mp4")
	extensionOk := strings.HasSuffix(strings.ToLower(filename), ".mp4")
	if !contentTypeOk && !extensionOk {
		return nil, httpErrors.NewInvalidMediaTypeError()
	}

	header := make([]byte, mp4HeaderLen)
	n, err := io.ReadFull(input.File, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, httpErrors.NewInvalidRequestError("Failed to read upload")
	}
	header = header[:n]
	if !utils.HasMP4Signature(header) {
		return nil, httpErrors.NewInvalidMediaTypeError()
	}
	return header, nil
}

func (u *videoUC) storeUpload(target string, header []byte, body io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrap(err, "create video directory")
	}
	out, err := os.Create(target)
	if err != nil {
		return errors.Wrap(err, "create video file")
	}
	defer out.Close()
	if _, err := out.Write(header); err != nil {
		return errors.Wrap(err, "write video file")
	}
	if _, err := io.Copy(out, body); err != nil {
		return errors.Wrap(err, "write video file")
	}
	return nil
}

// ProcessVideo runs the transcode pipeline for one video. At most one run per
// id may be in flight; a duplicate job is skipped rather than raced.
func (u *videoUC) ProcessVideo(ctx context.Context, videoID uuid.UUID) error {
	if !u.tryAcquire(videoID) {
		u.logger.Warnf("Processing already in flight for video %s, skipping", videoID)
		return nil
	}
	defer u.release(videoID)

	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			u.logger.Warnf("ProcessVideo - video %s no longer exists", videoID)
			return nil
		}
		return errors.Wrap(err, "ProcessVideo.GetVideoByID")
	}

	hlsDir := filepath.Join(u.resolveStorageRoot(), videoID.String(), hlsDirname)

	sourcePath := utils.ResolvePath(video.StoragePath)
	if _, err := os.Stat(sourcePath); err != nil {
		u.failProcessing(ctx, video, httpErrors.CodeProcessingFailed, "Source file missing")
		return nil
	}

	proxyPath := filepath.Join(u.resolveStorageRoot(), videoID.String(), proxyFilename)
	proxyResult, err := u.proxyGen.Generate(ctx, sourcePath, proxyPath)
	if err != nil {
		// The HLS directory was never touched at this point, so no cleanup.
		u.failProcessing(ctx, video, httpErrors.CodeProxyGenerationFailed, err.Error())
		return nil
	}
	u.logger.Infof("Proxy for %s: %d bytes, %d frames, %.2fs",
		videoID, proxyResult.FileSizeBytes, proxyResult.FrameCount, proxyResult.DurationSeconds)

	video.ProxyPath = &proxyPath
	updated, err := u.videoRepo.UpdateVideo(ctx, video)
	if err != nil {
		u.failProcessingWithCleanup(ctx, video, err.Error(), hlsDir)
		return nil
	}
	video = updated

	segmentSeconds := u.cfg.HLS.SegmentSeconds
	if segmentSeconds <= 0 {
		segmentSeconds = defaultSegmentSeconds
	}
	segmentResult, err := u.segmenter.Segment(ctx, proxyPath, hlsDir, segmentSeconds, SegmentPattern)
	if err != nil {
		u.failProcessingWithCleanup(ctx, video, err.Error(), hlsDir)
		return nil
	}

	hlsPackage := &models.HlsPackage{
		VideoID:                video.VideoID,
		ManifestPath:           segmentResult.ManifestPath,
		SegmentDir:             hlsDir,
		SegmentPattern:         SegmentPattern,
		SegmentDurationSeconds: segmentSeconds,
		SegmentCount:           segmentResult.SegmentCount,
		TotalDurationSeconds:   segmentResult.TotalDurationSeconds,
		GeneratedAt:            time.Now(),
	}
	if _, err = u.videoRepo.CreateHlsPackage(ctx, hlsPackage); err != nil {
		u.failProcessingWithCleanup(ctx, video, err.Error(), hlsDir)
		return nil
	}

	video.MarkReady()
	if _, err = u.videoRepo.UpdateVideo(ctx, video); err != nil {
		u.failProcessingWithCleanup(ctx, video, err.Error(), hlsDir)
		return nil
	}
	u.invalidateCache(ctx, video.VideoID)

	u.logger.Infof("Video %s is READY: %d segments, %ds",
		video.VideoID, segmentResult.SegmentCount, segmentResult.TotalDurationSeconds)
	return nil
}

func (u *videoUC) failProcessing(ctx context.Context, video *models.VideoRecord, code, message string) {
	u.logger.Errorf("Processing video %s failed (%s): %s", video.VideoID, code, message)
	video.MarkFailed(code, message)
	if _, err := u.videoRepo.UpdateVideo(ctx, video); err != nil {
		u.logger.Errorf("failed to persist FAILED status for video %s: %v", video.VideoID, err)
	}
	u.invalidateCache(ctx, video.VideoID)
}

func (u *videoUC) failProcessingWithCleanup(ctx context.Context, video *models.VideoRecord, message, hlsDir string) {
	u.failProcessing(ctx, video, httpErrors.CodeProcessingFailed, message)
	if err := utils.RemoveDirRecursive(hlsDir); err != nil {
		u.logger.Warnf("failed to clean up hls directory %s: %v", hlsDir, err)
	}
}

func (u *videoUC) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	if pagination == nil || pagination.GetPage() < 0 || pagination.GetSize() <= 0 {
		return nil, httpErrors.NewInvalidRequestError("Invalid pagination")
	}
	list, err := u.videoRepo.GetVideos(ctx, pagination)
	if err != nil {
		u.logger.Errorf("ListVideos - GetVideos error: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return list, nil
}

func (u *videoUC) GetVideoDetail(ctx context.Context, videoID uuid.UUID) (*models.VideoDetail, error) {
	video, err := u.getVideoCached(ctx, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httpErrors.NewVideoNotFoundError()
		}
		u.logger.Errorf("GetVideoDetail - GetVideoByID error: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	if video.Status != models.StatusReady {
		return nil, httpErrors.NewHlsNotReadyError()
	}
	// A READY record always has a package; the check guards against a
	// consistency breach in the store.
	if _, err = u.videoRepo.GetHlsPackage(ctx, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httpErrors.NewHlsNotReadyError()
		}
		u.logger.Errorf("GetVideoDetail - GetHlsPackage error: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return &models.VideoDetail{
		VideoID:     video.VideoID,
		Title:       video.Title,
		Status:      video.Status,
		SizeBytes:   video.SizeBytes,
		CreatedAt:   video.CreatedAt,
		ManifestURL: u.buildManifestURL(video.VideoID),
	}, nil
}

func (u *videoUC) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return httpErrors.NewVideoNotFoundError()
		}
		u.logger.Errorf("DeleteVideo - GetVideoByID error: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	hlsPackage, err := u.videoRepo.GetHlsPackage(ctx, videoID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		u.logger.Errorf("DeleteVideo - GetHlsPackage error: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}

	var fileErrs []string
	if err := utils.RemoveFileIfExists(utils.ResolvePath(video.StoragePath)); err != nil {
		fileErrs = append(fileErrs, err.Error())
	}
	if hlsPackage != nil {
		if err := utils.RemoveDirRecursive(utils.ResolvePath(hlsPackage.SegmentDir)); err != nil {
			fileErrs = append(fileErrs, err.Error())
		}
	}
	if video.ProxyPath != nil {
		if err := utils.RemoveFileIfExists(utils.ResolvePath(*video.ProxyPath)); err != nil {
			fileErrs = append(fileErrs, err.Error())
		}
	}

	// Metadata deletion always wins over filesystem cleanup failures. The
	// package row rides along on the FK cascade, so both rows go in one
	// statement and no reader sees a READY record without its package.
	if err := u.videoRepo.DeleteVideo(ctx, videoID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		u.logger.Errorf("DeleteVideo - DeleteVideo error: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	u.invalidateCache(ctx, videoID)

	if len(fileErrs) > 0 {
		u.logger.Warnf("DeleteVideo - records removed but file cleanup failed for %s: %s",
			videoID, strings.Join(fileErrs, "; "))
		return httpErrors.NewStorageIOError(strings.Join(fileErrs, "; "))
	}
	return nil
}

func (u *videoUC) getVideoCached(ctx context.Context, videoID uuid.UUID) (*models.VideoRecord, error) {
	cached, err := u.redisRepo.GetCachedVideo(ctx, videoID)
	if err != nil {
		u.logger.Warnf("GetCachedVideo error: %v", err)
	}
	if cached != nil {
		return cached, nil
	}
	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err = u.redisRepo.CacheVideo(ctx, video); err != nil {
		u.logger.Warnf("CacheVideo error: %v", err)
	}
	return video, nil
}

func (u *videoUC) invalidateCache(ctx context.Context, videoID uuid.UUID) {
	if err := u.redisRepo.DeleteCachedVideo(ctx, videoID); err != nil {
		u.logger.Warnf("DeleteCachedVideo error: %v", err)
	}
}

func (u *videoUC) resolveStorageRoot() string {
	return utils.ResolvePath(u.cfg.Storage.Root)
}

func (u *videoUC) buildManifestURL(videoID uuid.UUID) string {
	base := u.cfg.HLS.ManifestBaseURL
	if base == "" {
		base = "http://localhost:8080/media"
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), videoID, ManifestFilename)
}

func (u *videoUC) tryAcquire(videoID uuid.UUID) bool {
	u.inflightMu.Lock()
	defer u.inflightMu.Unlock()
	if _, running := u.inflight[videoID]; running {
		return false
	}
	u.inflight[videoID] = struct{}{}
	return true
}

func (u *videoUC) release(videoID uuid.UUID) {
	u.inflightMu.Lock()
	defer u.inflightMu.Unlock()
	delete(u.inflight, videoID)
}

package videos

import (
	"context"

	"github.com/google/uuid"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

type UseCase interface {
	UploadVideo(ctx context.Context, input *models.VideoUploadInput) (*models.VideoRecord, error)
	ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error)
	GetVideoDetail(ctx context.Context, videoID uuid.UUID) (*models.VideoDetail, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error

	// ProcessVideo runs the transcode pipeline for one id. Invoked by the
	// worker, never from the request path.
	ProcessVideo(ctx context.Context, videoID uuid.UUID) error
}

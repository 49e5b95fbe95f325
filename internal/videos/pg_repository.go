package videos

import (
	"context"

	"github.com/google/uuid"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

type Repository interface {
	CreateVideo(ctx context.Context, video *models.VideoRecord) (*models.VideoRecord, error)
	GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.VideoRecord, error)
	UpdateVideo(ctx context.Context, video *models.VideoRecord) (*models.VideoRecord, error)
	GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error

	CreateHlsPackage(ctx context.Context, pkg *models.HlsPackage) (*models.HlsPackage, error)
	GetHlsPackage(ctx context.Context, videoID uuid.UUID) (*models.HlsPackage, error)
}

package videos

import (
	"context"

	"github.com/google/uuid"
	"github.com/waitlight/vod-pipeline/internal/models"
)

type RedisRepository interface {
	EnqueueJob(ctx context.Context, key string, job *models.TranscodeJob) error
	DequeueJob(ctx context.Context, key string) (*models.TranscodeJob, error)

	CacheVideo(ctx context.Context, video *models.VideoRecord) error
	GetCachedVideo(ctx context.Context, videoID uuid.UUID) (*models.VideoRecord, error)
	DeleteCachedVideo(ctx context.Context, videoID uuid.UUID) error
}

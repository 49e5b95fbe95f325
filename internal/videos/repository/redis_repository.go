package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/waitlight/vod-pipeline/internal/config"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/internal/videos"
)

const defaultDequeueTimeout = 5 * time.Second

type videoRedisRepo struct {
	redisClient    *redis.Client
	cachePrefix    string
	cacheTTL       time.Duration
	dequeueTimeout time.Duration
}

func NewVideoRedisRepo(redisClient *redis.Client, cfg *config.Config) videos.RedisRepository {
	prefix := cfg.Redis.VideoCachePrefix
	if prefix == "" {
		prefix = "video:"
	}
	ttl := time.Duration(cfg.Redis.VideoCacheSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	dequeueTimeout := time.Duration(cfg.Worker.PollTimeout) * time.Second
	if dequeueTimeout <= 0 {
		dequeueTimeout = defaultDequeueTimeout
	}
	return &videoRedisRepo{
		redisClient:    redisClient,
		cachePrefix:    prefix,
		cacheTTL:       ttl,
		dequeueTimeout: dequeueTimeout,
	}
}

func (v *videoRedisRepo) EnqueueJob(ctx context.Context, key string, job *models.TranscodeJob) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "videoRedisRepo.EnqueueJob.Marshal")
	}
	return v.redisClient.LPush(ctx, key, jobBytes).Err()
}

func (v *videoRedisRepo) DequeueJob(ctx context.Context, key string) (*models.TranscodeJob, error) {
	res, err := v.redisClient.BRPop(ctx, v.dequeueTimeout, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "videoRedisRepo.DequeueJob.BRPop")
	}
	job := &models.TranscodeJob{}
	if err = json.Unmarshal([]byte(res[1]), job); err != nil {
		return nil, errors.Wrap(err, "videoRedisRepo.DequeueJob.Unmarshal")
	}
	return job, nil
}

func (v *videoRedisRepo) CacheVideo(ctx context.Context, video *models.VideoRecord) error {
	videoBytes, err := json.Marshal(video)
	if err != nil {
		return errors.Wrap(err, "videoRedisRepo.CacheVideo.Marshal")
	}
	return v.redisClient.Set(ctx, v.cachePrefix+video.VideoID.String(), videoBytes, v.cacheTTL).Err()
}

func (v *videoRedisRepo) GetCachedVideo(ctx context.Context, videoID uuid.UUID) (*models.VideoRecord, error) {
	videoBytes, err := v.redisClient.Get(ctx, v.cachePrefix+videoID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "videoRedisRepo.GetCachedVideo.Get")
	}
	video := &models.VideoRecord{}
	if err = json.Unmarshal(videoBytes, video); err != nil {
		return nil, errors.Wrap(err, "videoRedisRepo.GetCachedVideo.Unmarshal")
	}
	return video, nil
}

func (v *videoRedisRepo) DeleteCachedVideo(ctx context.Context, videoID uuid.UUID) error {
	return v.redisClient.Del(ctx, v.cachePrefix+videoID.String()).Err()
}

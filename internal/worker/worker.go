package worker

import (
	"context"
	"sync"
	"time"

	"github.com/waitlight/vod-pipeline/internal/config"
	"github.com/waitlight/vod-pipeline/internal/videos"
	"github.com/waitlight/vod-pipeline/pkg/logger"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

const cpuBackoff = 10 * time.Second

// Worker consumes transcode jobs from the queue and drives the pipeline.
type Worker struct {
	cfg       *config.Config
	logger    logger.Logger
	redisRepo videos.RedisRepository
	videoUC   videos.UseCase
	wg        sync.WaitGroup
}

func NewWorker(cfg *config.Config, log logger.Logger, redisRepo videos.RedisRepository, videoUC videos.UseCase) *Worker {
	return &Worker{
		cfg:       cfg,
		logger:    log,
		redisRepo: redisRepo,
		videoUC:   videoUC,
	}
}

func (w *Worker) Start(ctx context.Context) {
	count := w.cfg.Worker.WorkerCount
	if count <= 0 {
		count = 1
	}
	w.logger.Infof("Starting %d transcode workers", count)
	for i := 0; i < count; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if canAcceptJob, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !canAcceptJob {
			w.logger.Infof("CPU usage %.2f%% too high, backing off", usage)
			select {
			case <-ctx.Done():
				return
			case <-time.After(cpuBackoff):
			}
			continue
		}

		job, err := w.redisRepo.DequeueJob(ctx, w.cfg.Redis.JobQueueKey)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Errorf("failed to dequeue job: %v", err)
			continue
		}
		if job == nil {
			continue
		}

		w.logger.Infof("Processing job %s for video %s", job.JobID, job.VideoID)
		if err := w.videoUC.ProcessVideo(ctx, job.VideoID); err != nil {
			w.logger.Errorf("job %s failed: %v", job.JobID, err)
		}
	}
}

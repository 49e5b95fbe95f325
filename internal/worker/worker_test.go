package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waitlight/vod-pipeline/internal/config"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/pkg/utils"
)

type nopLogger struct{}

func (nopLogger) InitLogger()                                 {}
func (nopLogger) Debug(args ...interface{})                   {}
func (nopLogger) Debugf(template string, args ...interface{}) {}
func (nopLogger) Info(args ...interface{})                    {}
func (nopLogger) Infof(template string, args ...interface{})  {}
func (nopLogger) Warn(args ...interface{})                    {}
func (nopLogger) Warnf(template string, args ...interface{})  {}
func (nopLogger) Error(args ...interface{})                   {}
func (nopLogger) Errorf(template string, args ...interface{}) {}
func (nopLogger) Fatal(args ...interface{})                   {}
func (nopLogger) Fatalf(template string, args ...interface{}) {}

type queueStub struct {
	mu    sync.Mutex
	queue []*models.TranscodeJob
}

func (q *queueStub) EnqueueJob(ctx context.Context, key string, job *models.TranscodeJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, job)
	return nil
}

func (q *queueStub) DequeueJob(ctx context.Context, key string) (*models.TranscodeJob, error) {
	q.mu.Lock()
	if len(q.queue) == 0 {
		q.mu.Unlock()
		// A blocking pop times out without a job; mimic that briefly.
		select {
		case <-ctx.Done():
		case <-time.After(10 * time.Millisecond):
		}
		return nil, nil
	}
	job := q.queue[0]
	q.queue = q.queue[1:]
	q.mu.Unlock()
	return job, nil
}

func (q *queueStub) CacheVideo(ctx context.Context, video *models.VideoRecord) error { return nil }
func (q *queueStub) GetCachedVideo(ctx context.Context, videoID uuid.UUID) (*models.VideoRecord, error) {
	return nil, nil
}
func (q *queueStub) DeleteCachedVideo(ctx context.Context, videoID uuid.UUID) error { return nil }

type processorStub struct {
	mu        sync.Mutex
	processed []uuid.UUID
}

func (p *processorStub) UploadVideo(ctx context.Context, input *models.VideoUploadInput) (*models.VideoRecord, error) {
	return nil, nil
}
func (p *processorStub) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	return nil, nil
}
func (p *processorStub) GetVideoDetail(ctx context.Context, videoID uuid.UUID) (*models.VideoDetail, error) {
	return nil, nil
}
func (p *processorStub) DeleteVideo(ctx context.Context, videoID uuid.UUID) error { return nil }

func (p *processorStub) ProcessVideo(ctx context.Context, videoID uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed = append(p.processed, videoID)
	return nil
}

func (p *processorStub) processedIDs() []uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]uuid.UUID, len(p.processed))
	copy(out, p.processed)
	return out
}

func TestWorkerProcessesQueuedJobs(t *testing.T) {
	cfg := &config.Config{}
	cfg.Worker.WorkerCount = 1
	cfg.Worker.MaxCPUUsage = 100.0
	cfg.Redis.JobQueueKey = "transcode_jobs"

	queue := &queueStub{}
	processor := &processorStub{}
	videoID := uuid.New()
	require.NoError(t, queue.EnqueueJob(context.Background(), cfg.Redis.JobQueueKey, &models.TranscodeJob{
		JobID:      uuid.NewString(),
		VideoID:    videoID,
		EnqueuedAt: time.Now(),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorker(cfg, nopLogger{}, queue, processor)
	w.Start(ctx)

	require.Eventually(t, func() bool {
		return len(processor.processedIDs()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()

	assert.Equal(t, []uuid.UUID{videoID}, processor.processedIDs())
}

func TestWorkerStopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Worker.WorkerCount = 2
	cfg.Worker.MaxCPUUsage = 100.0
	cfg.Redis.JobQueueKey = "transcode_jobs"

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorker(cfg, nopLogger{}, &queueStub{}, &processorStub{})
	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not stop after cancellation")
	}
}

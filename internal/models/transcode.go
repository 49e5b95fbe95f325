package models

import (
	"time"

	"github.com/google/uuid"
)

// TranscodeJob is the queue payload produced once per successful upload.
type TranscodeJob struct {
	JobID      string    `json:"job_id" redis:"job_id"`
	VideoID    uuid.UUID `json:"video_id" redis:"video_id"`
	EnqueuedAt time.Time `json:"enqueued_at" redis:"enqueued_at"`
}

// ProxyResult is what the proxy generator reports on success.
type ProxyResult struct {
	ProxyPath       string
	FileSizeBytes   int64
	FrameCount      int
	DurationSeconds float64
}

// SegmentResult is what the HLS segmenter reports on success.
type SegmentResult struct {
	ManifestPath         string
	SegmentCount         int
	TotalDurationSeconds int
}

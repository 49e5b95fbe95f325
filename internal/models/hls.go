package models

import (
	"time"

	"github.com/google/uuid"
)

// HlsPackage exists iff the owning VideoRecord is READY.
type HlsPackage struct {
	VideoID                uuid.UUID `json:"video_id" db:"video_id" validate:"required"`
	ManifestPath           string    `json:"manifest_path" db:"manifest_path" validate:"required"`
	SegmentDir             string    `json:"segment_dir" db:"segment_dir" validate:"required"`
	SegmentPattern         string    `json:"segment_pattern" db:"segment_pattern" validate:"required"`
	SegmentDurationSeconds int       `json:"segment_duration_seconds" db:"segment_duration_seconds" validate:"required,gt=0"`
	SegmentCount           int       `json:"segment_count" db:"segment_count" validate:"omitempty"`
	TotalDurationSeconds   int       `json:"total_duration_seconds" db:"total_duration_seconds" validate:"omitempty"`
	GeneratedAt            time.Time `json:"generated_at" db:"generated_at" validate:"omitempty"`
}

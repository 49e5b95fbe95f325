package videos

import (
	"context"

	"github.com/waitlight/vod-pipeline/internal/models"
)

// ProxyGenerator produces a bitrate-reduced re-encode of a source file.
type ProxyGenerator interface {
	Generate(ctx context.Context, inputPath, outputPath string) (*models.ProxyResult, error)
}

// Segmenter splits a video into fixed-duration transport-stream segments
// plus an index manifest.
type Segmenter interface {
	Segment(ctx context.Context, inputPath, outputDir string, segmentDurationSeconds int, segmentPattern string) (*models.SegmentResult, error)
}

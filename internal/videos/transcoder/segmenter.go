package transcoder

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/internal/videos"
	"github.com/waitlight/vod-pipeline/pkg/logger"
)

const (
	segmentationTimeout = 5 * time.Minute
	ManifestFilename    = "index.m3u8"
	segmentExtension    = ".ts"
)

type ffmpegSegmenter struct {
	logger logger.Logger
}

func NewFFmpegSegmenter(log logger.Logger) videos.Segmenter {
	return &ffmpegSegmenter{
		logger: log,
	}
}

func (s *ffmpegSegmenter) Segment(ctx context.Context, inputPath, outputDir string, segmentDurationSeconds int, segmentPattern string) (*models.SegmentResult, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "ffmpegSegmenter.Segment.MkdirAll")
	}
	manifestPath := filepath.Join(outputDir, ManifestFilename)
	segmentFilename := filepath.Join(outputDir, segmentPattern)

	source, err := probeVideo(ctx, inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "ffmpegSegmenter.Segment.probeVideo")
	}

	segmentCtx, cancel := context.WithTimeout(ctx, segmentationTimeout)
	defer cancel()

	// Stream copy only; the proxy is already at the target bitrate.
	cmd := exec.CommandContext(segmentCtx, "ffmpeg",
		"-i", inputPath,
		"-c", "copy",
		"-f", "hls",
		"-hls_time", strconv.Itoa(segmentDurationSeconds),
		"-hls_list_size", "0",
		"-hls_segment_filename", segmentFilename,
		"-start_number", "0",
		"-hls_flags", "independent_segments",
		"-y", manifestPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(segmentCtx.Err(), context.DeadlineExceeded) {
			return nil, errors.New("hls segmentation timed out after 5 minutes")
		}
		return nil, errors.Errorf("hls segmentation failed: %v output: %s", err, tail(output))
	}

	if _, err := os.Stat(manifestPath); err != nil {
		return nil, errors.New("hls manifest not generated")
	}

	segmentCount, err := countSegments(outputDir)
	if err != nil {
		return nil, errors.Wrap(err, "ffmpegSegmenter.Segment.countSegments")
	}
	totalDuration := int(math.Max(0, math.Ceil(source.Duration)))

	s.logger.Infof("Segmented %s into %d segments (%ds total)", inputPath, segmentCount, totalDuration)

	return &models.SegmentResult{
		ManifestPath:         manifestPath,
		SegmentCount:         segmentCount,
		TotalDurationSeconds: totalDuration,
	}, nil
}

func countSegments(outputDir string) (int, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), segmentExtension) {
			count++
		}
	}
	return count, nil
}

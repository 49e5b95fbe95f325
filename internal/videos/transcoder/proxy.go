package transcoder

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/waitlight/vod-pipeline/internal/config"
	"github.com/waitlight/vod-pipeline/internal/models"
	"github.com/waitlight/vod-pipeline/internal/videos"
	"github.com/waitlight/vod-pipeline/pkg/logger"
)

const (
	proxyGenerationTimeout = 10 * time.Minute
	frameCountTolerance    = 1
)

type ffmpegProxyGenerator struct {
	cfg    *config.Config
	logger logger.Logger
}

func NewFFmpegProxyGenerator(cfg *config.Config, log logger.Logger) videos.ProxyGenerator {
	return &ffmpegProxyGenerator{
		cfg:    cfg,
		logger: log,
	}
}

func (g *ffmpegProxyGenerator) Generate(ctx context.Context, inputPath, outputPath string) (*models.ProxyResult, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, errors.Errorf("input video file does not exist: %s", inputPath)
	}

	source, err := probeVideo(ctx, inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "ffmpegProxyGenerator.Generate.probeVideo")
	}

	targetBitrate := ComputeTargetBitrate(source.BitRate, g.cfg.Proxy.BitrateReductionPercent)
	g.logger.Infof("Generating proxy for %s: source bitrate %d, target bitrate %d", inputPath, source.BitRate, targetBitrate)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, errors.Wrap(err, "ffmpegProxyGenerator.Generate.MkdirAll")
	}

	encodeCtx, cancel := context.WithTimeout(ctx, proxyGenerationTimeout)
	defer cancel()

	cmd := exec.CommandContext(encodeCtx, "ffmpeg",
		"-i", inputPath,
		"-c:v", "libx264",
		"-b:v", strconv.Itoa(targetBitrate),
		"-r", source.FrameRate,
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y", outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(encodeCtx.Err(), context.DeadlineExceeded) {
			return nil, errors.New("proxy generation timed out after 10 minutes")
		}
		return nil, errors.Errorf("proxy generation failed: %v output: %s", err, tail(output))
	}

	if _, err := os.Stat(outputPath); err != nil {
		return nil, errors.Errorf("proxy video file not generated: %s", outputPath)
	}

	proxy, err := probeVideo(ctx, outputPath)
	if err != nil {
		return nil, errors.Wrap(err, "ffmpegProxyGenerator.Generate.probeProxy")
	}
	if diff := proxy.FrameCount - source.FrameCount; diff > frameCountTolerance || diff < -frameCountTolerance {
		return nil, errors.Errorf("proxy frame count mismatch: expected %d, got %d", source.FrameCount, proxy.FrameCount)
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, errors.Wrap(err, "ffmpegProxyGenerator.Generate.Stat")
	}

	return &models.ProxyResult{
		ProxyPath:       outputPath,
		FileSizeBytes:   stat.Size(),
		FrameCount:      proxy.FrameCount,
		DurationSeconds: source.Duration,
	}, nil
}

// tail keeps error messages readable when ffmpeg dumps its full log.
func tail(output []byte) string {
	const maxLen = 2048
	if len(output) <= maxLen {
		return string(output)
	}
	return string(output[len(output)-maxLen:])
}

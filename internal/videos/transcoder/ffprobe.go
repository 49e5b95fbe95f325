package transcoder

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type probeInfo struct {
	FrameCount int
	BitRate    int
	FrameRate  string
	Duration   float64
}

func probeVideo(ctx context.Context, inputPath string) (*probeInfo, error) {
	info := &probeInfo{}

	frameRate, err := probeStreamEntry(ctx, inputPath, "stream=r_frame_rate")
	if err != nil {
		return nil, err
	}
	info.FrameRate = frameRate

	if bitRateRaw, err := probeStreamEntry(ctx, inputPath, "stream=bit_rate"); err == nil {
		if bitRate, convErr := strconv.Atoi(bitRateRaw); convErr == nil {
			info.BitRate = bitRate
		}
	}

	framesRaw, err := probeStreamEntry(ctx, inputPath, "stream=nb_frames")
	if err != nil {
		return nil, err
	}
	if frames, convErr := strconv.Atoi(framesRaw); convErr == nil {
		info.FrameCount = frames
	} else {
		// Fragmented MP4 does not carry nb_frames; decode to count.
		frames, err := countFrames(ctx, inputPath)
		if err != nil {
			return nil, err
		}
		info.FrameCount = frames
	}

	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries",
		"format=duration", "-of", "csv=p=0", inputPath)
	durationOutput, err := cmd.CombinedOutput()
	if err != nil {
		return nil, errors.Errorf("ffprobe duration error: %v", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(durationOutput)), 64)
	if err != nil {
		return nil, errors.Errorf("invalid duration: %v", err)
	}
	info.Duration = duration

	return info, nil
}

func probeStreamEntry(ctx context.Context, inputPath, entry string) (string, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-select_streams", "v:0",
		"-show_entries", entry, "-of", "csv=p=0", inputPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.Errorf("ffprobe error: %v output: %s", err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// countFrames decodes the stream to count frames when the container does not
// carry nb_frames.
func countFrames(ctx context.Context, inputPath string) (int, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-select_streams", "v:0",
		"-count_frames", "-show_entries", "stream=nb_read_frames", "-of", "csv=p=0", inputPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, errors.Errorf("ffprobe frame count error: %v output: %s", err, string(output))
	}
	frames, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0, errors.Errorf("invalid frame count: %v", err)
	}
	return frames, nil
}

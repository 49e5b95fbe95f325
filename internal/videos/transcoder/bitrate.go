package transcoder

const (
	defaultReductionPercent = 50
	minProxyBitrate         = 500000
)

// ComputeTargetBitrate derives the proxy bitrate from the source bitrate and
// the configured reduction percent. A percent outside (0, 100) falls back to
// 50; a non-positive result is clamped to the 500 kbps floor.
func ComputeTargetBitrate(originalBitrate, reductionPercent int) int {
	if reductionPercent <= 0 || reductionPercent >= 100 {
		reductionPercent = defaultReductionPercent
	}
	target := int(float64(originalBitrate) * (1 - float64(reductionPercent)/100.0))
	if target <= 0 {
		target = minProxyBitrate
	}
	return target
}

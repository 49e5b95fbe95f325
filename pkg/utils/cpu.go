package utils

import "github.com/shirou/gopsutil/cpu"

// CheckCPUUsage reports whether aggregate CPU usage is at or below
// maxCPUUsage. The transcode workers use it as an admission gate before
// pulling the next job; a sampling failure counts as busy so an encode is
// never started blind.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64) {
	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		return false, 0
	}
	return usage[0] <= maxCPUUsage, usage[0]
}

//go:build !windows
// +build !windows

package clock

import "time"

var (
	bootMono time.Time
	bootWall time.Time
)

// platformCalibrate anchors Go's runtime monotonic reading to wall time.
// Non-Windows platforms already multiplex a vDSO-backed monotonic clock
// through time.Now, so a single anchor point is enough.
func platformCalibrate() {
	bootMono = time.Now()
	bootWall = bootMono
}

func epochMicrosSinceCalibration() int64 {
	elapsed := time.Since(bootMono)

	return bootWall.UnixMicro() + elapsed.Microseconds()
}

//go:build windows
// +build windows

package clock

import (
	"time"

	"golang.org/x/sys/windows"
)

var (
	bootWallMicros int64
	qpcFrequency   int64
	qpcAtBoot      int64
)

// platformCalibrate samples QueryPerformanceCounter/Frequency once at
// bootstrap, anchored against system time, so later calls avoid a syscall
// per frame.
func platformCalibrate() {
	bootWallMicros = time.Now().UnixMicro()

	var freq, counter int64
	if err := windows.QueryPerformanceFrequency(&freq); err != nil || freq == 0 {
		qpcFrequency = 0

		return
	}

	if err := windows.QueryPerformanceCounter(&counter); err != nil {
		qpcFrequency = 0

		return
	}

	qpcFrequency = freq
	qpcAtBoot = counter
}

func epochMicrosSinceCalibration() int64 {
	if qpcFrequency == 0 {
		return time.Now().UnixMicro()
	}

	var counter int64
	if err := windows.QueryPerformanceCounter(&counter); err != nil {
		return bootWallMicros
	}

	deltaTicks := counter - qpcAtBoot
	deltaMicros := (deltaTicks * 1_000_000) / qpcFrequency

	return bootWallMicros + deltaMicros
}

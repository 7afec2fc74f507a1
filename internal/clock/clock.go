// Package clock provides wall-clock date/time and monotonic timing services
// for the Teleios foundation runtime. Every other foundation component reads
// time through this package rather than calling time.Now directly, so the
// monotonic calibration policy in spec §4.1 has exactly one place to live.
package clock

import (
	"sync"
	"time"
)

// DateTime is a decomposed local wall-clock reading.
type DateTime struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int
	Minute int
	Second int
	Millis int // 0-999
}

var calibrateOnce sync.Once

// calibrate anchors the monotonic counter to wall time once per process.
// Platform-specific calibration (see clock_windows.go / clock_other.go) runs
// under this Once so later calls never repeat the syscall.
func calibrate() {
	calibrateOnce.Do(platformCalibrate)
}

// Now returns the current local date and time. Never fails: a clock read
// that the OS cannot service yields the zero DateTime rather than panicking.
func Now() DateTime {
	t := time.Now()
	if t.IsZero() {
		return DateTime{}
	}

	return DateTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Millis: t.Nanosecond() / int(time.Millisecond),
	}
}

// EpochMicros returns a monotonically non-decreasing count of microseconds
// since the Unix epoch.
func EpochMicros() uint64 {
	calibrate()

	us := epochMicrosSinceCalibration()
	if us < 0 {
		return 0
	}

	return uint64(us)
}

// EpochMillis returns EpochMicros divided down to milliseconds.
func EpochMillis() uint64 {
	return EpochMicros() / 1000
}

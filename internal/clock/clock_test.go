package clock

import "testing"

func TestEpochMicrosMonotonicNonDecreasing(t *testing.T) {
	prev := EpochMicros()
	for i := 0; i < 1000; i++ {
		cur := EpochMicros()
		if cur < prev {
			t.Fatalf("epoch micros went backwards: %d -> %d", prev, cur)
		}
		prev = cur
	}
}

func TestEpochMillisDerivedFromMicros(t *testing.T) {
	us := EpochMicros()
	ms := EpochMillis()

	if ms > us/1000+1 {
		t.Fatalf("millis %d inconsistent with micros %d", ms, us)
	}
}

func TestNowFieldsInRange(t *testing.T) {
	dt := Now()

	if dt.Month < 1 || dt.Month > 12 {
		t.Fatalf("month out of range: %d", dt.Month)
	}

	if dt.Day < 1 || dt.Day > 31 {
		t.Fatalf("day out of range: %d", dt.Day)
	}

	if dt.Hour < 0 || dt.Hour > 23 {
		t.Fatalf("hour out of range: %d", dt.Hour)
	}

	if dt.Millis < 0 || dt.Millis > 999 {
		t.Fatalf("millis out of range: %d", dt.Millis)
	}
}

package util

import "time"

const (
	// TimeFormat is the human-readable timestamp layout used by FormatTimeMillis.
	TimeFormat = "2006-01-02 15:04:05"

	millisPerNano = int64(time.Millisecond / time.Nanosecond)
)

// CurrentTimeMillis returns the current Unix timestamp in milliseconds.
func CurrentTimeMillis() uint64 {
	return uint64(time.Now().UnixNano() / millisPerNano)
}

// CurrentTimeNanos returns the current Unix timestamp in nanoseconds.
func CurrentTimeNanos() uint64 {
	return uint64(time.Now().UnixNano())
}

// FormatTimeMillis formats a millisecond Unix timestamp as a human-readable string.
func FormatTimeMillis(tsMillis uint64) string {
	return time.Unix(0, int64(tsMillis)*millisPerNano).Format(TimeFormat)
}

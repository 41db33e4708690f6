// utils/timestamps.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoLayout  = "2006-01-02T15:04:05Z07:00" // YouTube API timestamps, "Z" suffixed
	dateLayout = "2006-01-02"                // older crawler trending_date
)

// ParseSnapshotTimestamp parses a publishedAt or trending_date value.
// Both the ISO-8601 form and a bare date (midnight UTC) are accepted; the
// result is always in UTC.
func ParseSnapshotTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(isoLayout, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", value)
}

// HoursBetween returns whole hours from start to end, truncated toward zero.
func HoursBetween(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Hour)
}

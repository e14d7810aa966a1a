// Package timefmt canonicalizes the heterogeneous time strings returned by
// the campus backend into a fixed HH:MM 24-hour form.
package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel is returned for empty or unparseable inputs. It means "unknown"
// and is never an error.
const Sentinel = "00:00"

var (
	hourMinutePattern       = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	hourMinuteSecondPattern = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}$`)
)

// stampLayouts are tried in order when the input is a full date/time stamp.
var stampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Normalize returns the canonical HH:MM form of the supplied time value.
// It accepts H:MM, HH:MM, HH:MM:SS and full date/time stamps. Normalizing an
// already canonical value returns it unchanged, and any input that matches no
// recognized shape yields the Sentinel.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Sentinel
	}

	if hourMinutePattern.MatchString(value) {
		return pad(value)
	}

	if hourMinuteSecondPattern.MatchString(value) {
		parts := strings.SplitN(value, ":", 3)
		return pad(parts[0] + ":" + parts[1])
	}

	for _, layout := range stampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
		}
	}

	return Sentinel
}

// SplitHourMinute extracts the hour and minute components of a canonical or
// near-canonical time string. A missing minute component counts as zero; a
// value with no parseable hour reports 0, 0.
func SplitHourMinute(value string) (hour, minute int) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}

func pad(value string) string {
	if len(value) == 4 {
		return "0" + value
	}
	return value
}

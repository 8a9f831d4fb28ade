package console

import (
	"fmt"
	"strings"
	"time"
)

var periods = []struct {
	seconds int64
	name    string
}{
	{60 * 60 * 24 * 365, "year"},
	{60 * 60 * 24 * 30, "month"},
	{60 * 60 * 24, "day"},
	{60 * 60, "hour"},
	{60, "minute"},
	{1, "second"},
}

// FormatDuration renders a duration as a descending list of calendar
// periods, e.g. "1 day, 3 hours". Negative durations get a leading minus.
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	negative := seconds < 0
	if negative {
		seconds = -seconds
	}

	parts := []string{}
	for _, period := range periods {
		if seconds > period.seconds {
			value := seconds / period.seconds
			seconds %= period.seconds
			part := fmt.Sprintf("%d %s", value, period.name)
			if value > 1 {
				part += "s"
			}
			parts = append(parts, part)
		}
	}

	ret := strings.Join(parts, ", ")
	if negative {
		ret = "-" + ret
	}
	return ret
}

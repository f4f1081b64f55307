package systemd

import (
	"fmt"
	"time"
)

// FormatElapsed renders the time elapsed since the given epoch-millisecond
// timestamp as the single largest applicable unit pair: days+hours, else
// hours+minutes, else minutes+seconds, else seconds. A zero timestamp or a
// negative elapsed time renders as "unknown".
func FormatElapsed(sinceMillis int64, now time.Time) string {
	if sinceMillis <= 0 {
		return "unknown"
	}

	d := now.Sub(time.UnixMilli(sinceMillis))
	if d < 0 {
		return "unknown"
	}

	days := int64(d / (24 * time.Hour))
	hours := int64(d/time.Hour) % 24
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

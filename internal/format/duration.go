// Package format provides human-readable formatting of durations, sizes and
// precisions for CLI output.
package format

import (
	"fmt"
	"time"
)

// ExecutionDuration formats a time.Duration for display. It shows
// microseconds below a millisecond, milliseconds below a second, and the
// default string representation otherwise.
func ExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

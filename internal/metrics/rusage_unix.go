//go:build unix

package metrics

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// peakRSS returns the peak resident set size of the process in bytes.
func peakRSS() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil || ru.Maxrss <= 0 {
		return 0
	}
	rss := uint64(ru.Maxrss)
	// Darwin reports bytes; Linux and the BSDs report kilobytes.
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return rss
	}
	return rss * 1024
}

//go:build !unix

package metrics

func peakRSS() uint64 { return 0 }

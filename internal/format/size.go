package format

import "fmt"

// Bytes formats a byte count with binary units.
func Bytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Precision formats a precision in bits together with its approximate
// number of decimal digits.
func Precision(bits uint) string {
	// log10(2) = 0.30103
	return fmt.Sprintf("%d bits (~%d digits)", bits, uint64(float64(bits)*0.30103))
}

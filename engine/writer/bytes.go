package writer

import "fmt"

const (
	KB = 1024
	MB = 1024 * KB
	GB = 1024 * MB
)

// ByteSize formats a byte count the way the original's format::write_bytes
// does, used by the arena exhaustion error to report budget and usage in
// human terms.
func ByteSize(n int64) string {
	switch {
	case n == 1:
		return "1 byte"
	case n < KB:
		return fmt.Sprintf("%d bytes", n)
	case n < MB:
		return fmt.Sprintf("%d KB", n/KB)
	case n < GB:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(MB))
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	}
}

package util

import (
	"fmt"
	"math"
)

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// FormatSize renders a byte count the way the send form labels a picked file.
// Values at or above one megabyte stay in MB; there is no larger unit.
func FormatSize(size int64) string {
	switch {
	case size < kilobyte:
		return fmt.Sprintf("%d bytes", size)
	case size < megabyte:
		return fmt.Sprintf("%.1f KB", roundTenths(float64(size)/kilobyte))
	default:
		return fmt.Sprintf("%.1f MB", roundTenths(float64(size)/megabyte))
	}
}

// roundTenths rounds to one decimal with ties going up. fmt alone would round
// 1.25 to 1.2.
func roundTenths(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

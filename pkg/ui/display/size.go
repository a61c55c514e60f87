package display

import "fmt"

// FormatSize renders a byte count with decimal units (B, K, M, G, T).
// Small scaled values keep two decimals, mid-range values one, larger
// ones none, so every size fits in a narrow column.
func FormatSize(size uint64) string {
	const exp = 1000

	digits := 0
	for sz := size; sz > 0; sz /= exp {
		digits++
	}

	var unit byte
	switch digits - 1 {
	case 1:
		unit = 'K'
	case 2:
		unit = 'M'
	case 3:
		unit = 'G'
	case 4:
		unit = 'T'
	default:
		return fmt.Sprintf("%dB", size)
	}

	scaled := size
	for i := 1; i < digits; i++ {
		scaled /= exp
	}

	switch {
	case scaled < 10:
		return fmt.Sprintf("%.2f%c", float64(scaled), unit)
	case scaled < 100:
		return fmt.Sprintf("%.1f%c", float64(scaled), unit)
	default:
		return fmt.Sprintf("%d%c", scaled, unit)
	}
}

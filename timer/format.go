package timer

import "fmt"

// OverflowSentinel is what FormatPrecise returns for durations it cannot
// represent.
const OverflowSentinel = ">7min"

// MaxFormattable is the largest precise duration FormatPrecise accepts. The
// conversion multiplies by 4 in 32 bits.
const MaxFormattable uint32 = 0xFFFFFFFF >> 2

// FormatPrecise renders a precise duration, in 0.4 us beam positions, using
// the largest of us, ms and s that keeps the integer part below 1000.
func FormatPrecise(ticks uint32) string {
	if ticks > MaxFormattable {
		return OverflowSentinel
	}

	// Tenths of a microsecond.
	result := ticks * 4
	rest := result % 10
	result /= 10

	if result < 1000 {
		return fmt.Sprintf("%3d.%01d us", result, rest)
	}

	rest = result % 1000
	result /= 1000

	if result < 1000 {
		return fmt.Sprintf("%3d.%03d ms", result, rest)
	}

	rest = result % 1000
	result /= 1000

	return fmt.Sprintf("%d.%03d s", result, rest)
}

package common

import "fmt"

// FormatSignedPct formats a percentage with +/- prefix
func FormatSignedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatSignedPct1 formats a percentage with +/- prefix to one decimal,
// the precision the landing page displays.
func FormatSignedPct1(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatPct1 formats an unsigned percentage to one decimal, used for
// allocation weights.
func FormatPct1(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatMoney formats a float as a dollar amount
func FormatMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

package view

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatAmount renders an amount with the configured currency symbol,
// trimming trailing zeros (1250.50 -> ₹1250.5, 1000 -> ₹1000).
func FormatAmount(symbol string, amount float64) string {
	return symbol + strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatPercent rounds to the nearest whole percent for display.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(pct)))
}

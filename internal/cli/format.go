// Package cli provides the command-line interface for the payoff calculator.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats a currency amount with two decimal places.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatProfit formats a profit value with an explicit sign for gains.
// The infinite sentinels render as "Unlimited".
func FormatProfit(v float64) string {
	if math.IsInf(v, 0) {
		return "Unlimited"
	}
	if v > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPrice formats a price without trailing zeros.
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FormatBreakevens formats a breakeven list for display.
func FormatBreakevens(breakevens []float64) string {
	if len(breakevens) == 0 {
		return "none"
	}
	parts := make([]string, len(breakevens))
	for i, b := range breakevens {
		parts[i] = FormatPrice(b)
	}
	return strings.Join(parts, ", ")
}

// FormatDateTime formats a timestamp for display.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02-Jan-2006 15:04:05")
}

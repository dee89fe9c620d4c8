package metrics

import "github.com/shopspring/decimal"

// FormatCurrency renders a P/L amount to the cent with an explicit "+" for
// non-negative values: "+$95.00", "$-105.00".
func FormatCurrency(amount float64) string {
	prefix := ""
	if amount >= 0 {
		prefix = "+"
	}
	return prefix + "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatPercent renders a percentage to two places: "+10.00%", "-10.00%".
func FormatPercent(percent float64) string {
	prefix := ""
	if percent >= 0 {
		prefix = "+"
	}
	return prefix + decimal.NewFromFloat(percent).StringFixed(2) + "%"
}

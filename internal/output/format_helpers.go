package output

import (
	"strconv"

	moneyfmt "github.com/hhforecast/household-forecast/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatYen formats an amount as whole yen with separators, e.g. "¥1,234,567".
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatYen(amount decimal.Decimal) string {
	return moneyfmt.NewMoneyFromDecimal(amount).Format()
}

// FormatCompact abbreviates large amounts into 万 / 億 units.
func FormatCompact(amount decimal.Decimal) string {
	return moneyfmt.NewMoneyFromDecimal(amount).Compact()
}

// FormatPercentage formats a percentage figure with one decimal. Settings already hold percents.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(1) + "%" }

// yenString renders whole yen without separators, for machine-readable output.
func yenString(amount decimal.Decimal) string {
	return moneyfmt.RoundHalfUp(amount).StringFixed(0)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

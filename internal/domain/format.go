package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Grouping selects the thousands separator convention.
type Grouping string

const (
	// GroupingIndian groups the last three digits, then pairs: 12,34,567.89
	GroupingIndian Grouping = "indian"
	// GroupingWestern groups in threes: 1,234,567.89
	GroupingWestern Grouping = "western"
)

// DefaultCurrencySymbol is the rupee glyph.
const DefaultCurrencySymbol = "₹"

// MoneyFormatter renders amounts for display.
type MoneyFormatter struct {
	Symbol   string
	Grouping Grouping
}

// NewMoneyFormatter returns a formatter, falling back to Indian grouping for unknown values.
func NewMoneyFormatter(symbol string, grouping Grouping) MoneyFormatter {
	if grouping != GroupingWestern {
		grouping = GroupingIndian
	}
	return MoneyFormatter{Symbol: symbol, Grouping: grouping}
}

// Format prints the symbol followed by the grouped amount with two decimals.
// Negative values keep the sign after the symbol (₹-1,000.00).
func (f MoneyFormatter) Format(amount decimal.Decimal) string {
	return f.Symbol + f.FormatNumber(amount)
}

// FormatNumber prints the grouped amount without a currency symbol.
func (f MoneyFormatter) FormatNumber(amount decimal.Decimal) string {
	fixed := amount.StringFixed(AmountScale)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, frac, _ := strings.Cut(fixed, ".")
	if sign == "-" && strings.Trim(intPart, "0") == "" && strings.Trim(frac, "0") == "" {
		sign = ""
	}

	return sign + f.group(intPart) + "." + frac
}

func (f MoneyFormatter) group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if f.Grouping == GroupingIndian {
		size = 2
	}

	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)

	return strings.Join(parts, ",") + "," + tail
}

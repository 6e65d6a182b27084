package domain

import "github.com/shopspring/decimal"

// Totals are the aggregate figures derived from the whole collection.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// ComputeTotals sums income and expense over every entry. The active filter never
// applies here.
func ComputeTotals(entries []Entry) Totals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, e := range entries {
		switch e.Type {
		case EntryTypeIncome:
			income = income.Add(e.Amount)
		case EntryTypeExpense:
			expense = expense.Add(e.Amount)
		}
	}

	return Totals{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}
}

// NetTone is a styling hint for the net balance.
type NetTone string

const (
	NetPositive NetTone = "positive"
	NetNegative NetTone = "negative"
)

// Tone tags net as positive when it is zero or above.
func (t Totals) Tone() NetTone {
	if t.Net.IsNegative() {
		return NetNegative
	}
	return NetPositive
}

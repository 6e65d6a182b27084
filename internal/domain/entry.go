package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes income from expense entries.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// ParseEntryType accepts only the exact wire names.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryTypeIncome, EntryTypeExpense:
		return EntryType(s), nil
	default:
		return "", ErrInvalidType
	}
}

// Label returns the capitalized display name.
func (t EntryType) Label() string {
	switch t {
	case EntryTypeExpense:
		return "Expense"
	default:
		return "Income"
	}
}

// Entry represents a single recorded income or expense.
type Entry struct {
	CreatedAt   time.Time
	ID          string
	Type        EntryType
	Description string
	Amount      decimal.Decimal
}

// IsIncome reports whether the entry counts towards income.
func (e Entry) IsIncome() bool {
	return e.Type == EntryTypeIncome
}

// IsExpense reports whether the entry counts towards expense.
func (e Entry) IsExpense() bool {
	return e.Type == EntryTypeExpense
}

// CloneEntries returns a shallow copy of the slice so callers cannot reorder the original.
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// IndexOf returns the position of the entry with id, or -1.
func IndexOf(entries []Entry, id string) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}

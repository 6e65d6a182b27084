package domain

// Filter restricts which entries are displayed.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

// ParseFilter accepts all, income or expense. An empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterIncome, FilterExpense:
		return Filter(s), nil
	default:
		return "", ErrInvalidFilter
	}
}

// Matches reports whether the entry is visible under the filter.
func (f Filter) Matches(e Entry) bool {
	switch f {
	case FilterIncome:
		return e.Type == EntryTypeIncome
	case FilterExpense:
		return e.Type == EntryTypeExpense
	default:
		return true
	}
}

// Visible projects the entries shown under filter, keeping collection order.
func Visible(entries []Entry, filter Filter) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

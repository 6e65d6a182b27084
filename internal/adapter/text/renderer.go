// Package text renders the ledger view for terminals.
package text

import (
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

// EmptyPlaceholder is printed instead of the table when no row is visible.
const EmptyPlaceholder = "No entries to show."

// Renderer writes views as aligned plain-text tables.
type Renderer struct {
	formatter domain.MoneyFormatter
}

// NewRenderer creates a new Renderer.
func NewRenderer(formatter domain.MoneyFormatter) *Renderer {
	return &Renderer{formatter: formatter}
}

// Totals writes the income, expense and net lines.
func (r *Renderer) Totals(w io.Writer, t domain.Totals) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Income\t%s\t\n", r.formatter.Format(t.Income))
	fmt.Fprintf(tw, "Expense\t%s\t\n", r.formatter.Format(t.Expense))
	fmt.Fprintf(tw, "Net\t%s\t\n", r.formatter.Format(t.Net))
	return tw.Flush()
}

// View writes the totals followed by the visible rows, or the empty placeholder.
func (r *Renderer) View(w io.Writer, v usecase.View) error {
	if err := r.Totals(w, v.Totals); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nShowing: %s\n\n", v.Filter)

	if v.Empty {
		_, err := fmt.Fprintln(w, EmptyPlaceholder)
		return err
	}

	return r.Entries(w, rowEntries(v.Rows))
}

// Entries writes one line per entry.
func (r *Renderer) Entries(w io.Writer, entries []domain.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tDESCRIPTION\tAMOUNT\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Type.Label(),
			Truncate(e.Description, 32),
			r.signed(e),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return tw.Flush()
}

func (r *Renderer) signed(e domain.Entry) string {
	if e.IsExpense() {
		return "-" + r.formatter.Format(e.Amount)
	}
	return "+" + r.formatter.Format(e.Amount)
}

func rowEntries(rows []usecase.Row) []domain.Entry {
	entries := make([]domain.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.Entry
	}
	return entries
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

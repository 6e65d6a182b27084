package text

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/usecase"
)

var rupees = domain.NewMoneyFormatter(domain.DefaultCurrencySymbol, domain.GroupingIndian)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "lon...", Truncate("longerstring", 6))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "₹₹₹...", Truncate("₹₹₹₹₹₹₹", 6))
}

func TestRendererView(t *testing.T) {
	entries := []domain.Entry{
		{ID: "b", Type: domain.EntryTypeExpense, Description: "Rent", Amount: decimal.NewFromInt(85000), CreatedAt: time.UnixMilli(2000)},
		{ID: "a", Type: domain.EntryTypeIncome, Description: "Salary", Amount: decimal.NewFromInt(50000), CreatedAt: time.UnixMilli(1000)},
	}

	var buf bytes.Buffer
	view := usecase.BuildView(entries, domain.FilterAll, nil, domain.NewCreateForm())
	require.NoError(t, NewRenderer(rupees).View(&buf, view))

	out := buf.String()
	assert.Contains(t, out, "₹-35,000.00")
	assert.Contains(t, out, "-₹85,000.00")
	assert.Contains(t, out, "+₹50,000.00")
	assert.Contains(t, out, "Showing: all")
	assert.Less(t, strings.Index(out, "Rent"), strings.Index(out, "Salary"), "newest first")
}

func TestRendererEmpty(t *testing.T) {
	entries := []domain.Entry{
		{ID: "a", Type: domain.EntryTypeIncome, Description: "Salary", Amount: decimal.NewFromInt(100)},
	}

	var buf bytes.Buffer
	view := usecase.BuildView(entries, domain.FilterExpense, nil, domain.NewCreateForm())
	require.NoError(t, NewRenderer(rupees).View(&buf, view))

	assert.Contains(t, buf.String(), EmptyPlaceholder)
	assert.Contains(t, buf.String(), "₹100.00", "totals ignore the filter")
	assert.NotContains(t, buf.String(), "Salary")
}

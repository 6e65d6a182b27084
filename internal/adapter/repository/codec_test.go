package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/pocketledger/internal/domain"
)

var decodeNow = time.UnixMilli(1700000000000)

func testDecoder() Decoder {
	n := 0
	return Decoder{
		NewID: func() string {
			n++
			return fmt.Sprintf("fresh-%d", n)
		},
		Now: func() time.Time { return decodeNow },
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	entries := []domain.Entry{
		{ID: "01HX", Type: domain.EntryTypeExpense, Description: "Rent", Amount: decimal.RequireFromString("15000.00"), CreatedAt: time.UnixMilli(1709287200123)},
		{ID: "01HW", Type: domain.EntryTypeIncome, Description: "Salary \"March\" ₹", Amount: decimal.RequireFromString("50000.55"), CreatedAt: time.UnixMilli(1709280000000)},
	}

	payload, err := EncodeEntries(entries)
	require.NoError(t, err)

	got, coercions, err := testDecoder().Decode(payload)
	require.NoError(t, err)
	assert.Empty(t, coercions)
	require.Len(t, got, len(entries))

	for i := range entries {
		assert.Equal(t, entries[i].ID, got[i].ID)
		assert.Equal(t, entries[i].Type, got[i].Type)
		assert.Equal(t, entries[i].Description, got[i].Description)
		assert.True(t, entries[i].Amount.Equal(got[i].Amount), "amount %s != %s", entries[i].Amount, got[i].Amount)
		assert.Equal(t, entries[i].CreatedAt.UnixMilli(), got[i].CreatedAt.UnixMilli())
	}
}

func TestEncodeWritesNumbers(t *testing.T) {
	payload, err := EncodeEntries([]domain.Entry{
		{ID: "a", Type: domain.EntryTypeIncome, Description: "Salary", Amount: decimal.RequireFromString("12.5"), CreatedAt: time.UnixMilli(42)},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","type":"income","description":"Salary","amount":12.5,"createdAt":42}]`, string(payload))
}

func TestDecodeMalformedPayload(t *testing.T) {
	for _, payload := range []string{"", "   ", "null", "{}", `"entries"`, "42", "[{", "not json"} {
		t.Run(payload, func(t *testing.T) {
			got, _, err := testDecoder().Decode([]byte(payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrStorageRead))
			assert.Empty(t, got)
		})
	}
}

func TestDecodeCoercesRecords(t *testing.T) {
	payload := `[
		{"id": 7, "type": "EXPENSE", "description": null, "amount": "12.30", "createdAt": "1700000000999"},
		{"id": "x", "type": "expense", "description": "Fuel", "amount": "abc"},
		{"id": "x", "type": "income", "description": 99, "amount": 5, "createdAt": 0},
		42
	]`

	got, coercions, err := testDecoder().Decode([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "7", got[0].ID)
	assert.Equal(t, domain.EntryTypeIncome, got[0].Type, "only exact expense maps to expense")
	assert.Equal(t, "", got[0].Description)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("12.3")))
	assert.Equal(t, int64(1700000000999), got[0].CreatedAt.UnixMilli())

	assert.Equal(t, domain.EntryTypeExpense, got[1].Type)
	assert.True(t, got[1].Amount.IsZero(), "non numeric amount defaults to zero")
	assert.Equal(t, decodeNow, got[1].CreatedAt)

	assert.Equal(t, "fresh-1", got[2].ID, "duplicate id gets a fresh one")
	assert.Equal(t, "99", got[2].Description)
	assert.Equal(t, decodeNow, got[2].CreatedAt, "zero timestamp falls back to now")

	assert.Equal(t, "fresh-2", got[3].ID)
	assert.Equal(t, domain.EntryTypeIncome, got[3].Type)
	assert.True(t, got[3].Amount.IsZero())

	assert.Contains(t, coercions, Coercion{Index: 0, Field: "type"})
	assert.Contains(t, coercions, Coercion{Index: 1, Field: "amount"})
	assert.Contains(t, coercions, Coercion{Index: 2, Field: "id"})
	assert.Contains(t, coercions, Coercion{Index: 3, Field: "createdAt"})
}

func TestDecodeEmptyArray(t *testing.T) {
	got, coercions, err := testDecoder().Decode([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, coercions)
}

func TestDecodeMatchesKeysExactly(t *testing.T) {
	payload := `[{"ID": "abc", "Type": "expense", "Description": "Rent", "AMOUNT": 15000, "CreatedAt": 1700000000999}]`

	got, coercions, err := testDecoder().Decode([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "fresh-1", got[0].ID)
	assert.Equal(t, domain.EntryTypeIncome, got[0].Type)
	assert.Equal(t, "", got[0].Description)
	assert.True(t, got[0].Amount.IsZero())
	assert.Equal(t, decodeNow, got[0].CreatedAt)
	assert.Len(t, coercions, 5)
}

func TestDecodeRejectsOutOfRangeAmounts(t *testing.T) {
	payload := `[
		{"id": "a", "type": "income", "description": "Huge", "amount": 1e2000000, "createdAt": 1700000000999},
		{"id": "b", "type": "income", "description": "Tiny", "amount": "1e-2000000", "createdAt": 1700000000999},
		{"id": "c", "type": "income", "description": "Far future", "amount": 10, "createdAt": 1e400}
	]`

	got, coercions, err := testDecoder().Decode([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.True(t, got[0].Amount.IsZero())
	assert.True(t, got[1].Amount.IsZero())
	assert.Equal(t, decodeNow, got[2].CreatedAt)

	assert.Contains(t, coercions, Coercion{Index: 0, Field: "amount"})
	assert.Contains(t, coercions, Coercion{Index: 1, Field: "amount"})
	assert.Contains(t, coercions, Coercion{Index: 2, Field: "createdAt"})
}

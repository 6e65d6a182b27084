package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

// record is the persisted shape of one entry.
type record struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	CreatedAt   int64       `json:"createdAt"`
}

// rawRecord defers decoding of every field so each one can be coerced on its own.
// Keys are matched exactly; encoding/json struct decoding would fold case.
type rawRecord map[string]json.RawMessage

// Coercion describes a field that was replaced by its default while decoding.
type Coercion struct {
	Index int
	Field string
}

// EncodeEntries serializes the collection as a JSON array of records.
func EncodeEntries(entries []domain.Entry) ([]byte, error) {
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		records = append(records, record{
			ID:          e.ID,
			Type:        string(e.Type),
			Description: e.Description,
			Amount:      json.Number(e.Amount.String()),
			CreatedAt:   e.CreatedAt.UnixMilli(),
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode entries: %w", err)
	}
	return data, nil
}

// Decoder turns a stored payload back into entries.
type Decoder struct {
	NewID func() string
	Now   func() time.Time
}

// Decode parses payload. A payload that is not a JSON array fails with
// domain.ErrStorageRead; individual records never fail, they are coerced.
func (d Decoder) Decode(payload []byte) ([]domain.Entry, []Coercion, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || payload[0] != '[' {
		return nil, nil, fmt.Errorf("%w: payload is not an array", domain.ErrStorageRead)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}

	entries := make([]domain.Entry, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	var coercions []Coercion

	for i, item := range items {
		entry, fields := d.coerce(item)

		if _, dup := seen[entry.ID]; dup || entry.ID == "" {
			entry.ID = d.NewID()
			fields = append(fields, "id")
		}
		seen[entry.ID] = struct{}{}

		for _, f := range fields {
			coercions = append(coercions, Coercion{Index: i, Field: f})
		}
		entries = append(entries, entry)
	}

	return entries, coercions, nil
}

func (d Decoder) coerce(item json.RawMessage) (domain.Entry, []string) {
	var raw rawRecord
	if err := json.Unmarshal(item, &raw); err != nil {
		raw = nil
	}

	var defaulted []string

	id, _ := scalarText(raw["id"])

	typ := domain.EntryTypeIncome
	if s, ok := jsonString(raw["type"]); ok && s == string(domain.EntryTypeExpense) {
		typ = domain.EntryTypeExpense
	} else if !ok || s != string(domain.EntryTypeIncome) {
		defaulted = append(defaulted, "type")
	}

	description, ok := scalarText(raw["description"])
	if !ok {
		defaulted = append(defaulted, "description")
	}

	amount, ok := jsonDecimal(raw["amount"])
	if !ok {
		amount = decimal.Zero
		defaulted = append(defaulted, "amount")
	}

	createdAt := d.Now()
	if ms, ok := jsonDecimal(raw["createdAt"]); ok && !ms.IsZero() {
		createdAt = time.UnixMilli(ms.IntPart())
	} else {
		defaulted = append(defaulted, "createdAt")
	}

	return domain.Entry{
		ID:          id,
		Type:        typ,
		Description: description,
		Amount:      amount,
		CreatedAt:   createdAt,
	}, defaulted
}

// scalarText renders JSON strings, numbers and booleans as text.
func scalarText(raw json.RawMessage) (string, bool) {
	if s, ok := jsonString(raw); ok {
		return s, true
	}

	text := string(bytes.TrimSpace(raw))
	if text == "true" || text == "false" {
		return text, true
	}
	if _, err := decimal.NewFromString(text); err == nil && text != "" {
		return text, true
	}
	return "", false
}

func jsonString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

// jsonDecimal accepts JSON numbers and numeric strings within domain.AmountInRange.
func jsonDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	text := string(bytes.TrimSpace(raw))
	if s, ok := jsonString(raw); ok {
		text = strings.TrimSpace(s)
	}
	if text == "" || text == "null" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(text)
	if err != nil || !domain.AmountInRange(d) {
		return decimal.Zero, false
	}
	return d, true
}

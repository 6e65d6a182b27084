package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDescriptionLength = 60
	AmountScale          = 2

	// Exponents outside this window are rejected before rounding, which would
	// otherwise expand them digit by digit.
	maxAmountExponent = 16
	minAmountExponent = -32
)

// MaxAmount is the largest amount accepted, the largest integer a JSON client can
// hold exactly.
var MaxAmount = decimal.NewFromInt(9007199254740991)

// EntryInput is raw user input for creating or editing an entry.
type EntryInput struct {
	Type        string
	Description string
	Amount      string
}

// ValidEntry is EntryInput after validation and normalisation.
type ValidEntry struct {
	Type        EntryType
	Description string
	Amount      decimal.Decimal
}

// ValidateEntry checks description, amount and type, in that order, and returns the
// normalised values. The first failing field wins.
func ValidateEntry(in EntryInput) (ValidEntry, error) {
	description, err := ValidateDescription(in.Description)
	if err != nil {
		return ValidEntry{}, err
	}

	amount, err := ValidateAmount(in.Amount)
	if err != nil {
		return ValidEntry{}, err
	}

	typ, err := ParseEntryType(in.Type)
	if err != nil {
		return ValidEntry{}, &ValidationError{Field: "type", Err: err}
	}

	return ValidEntry{Type: typ, Description: description, Amount: amount}, nil
}

// ValidateDescription trims the description and rejects blanks.
func ValidateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	return description, nil
}

// ValidateAmount parses a positive amount and rounds it to two fractional digits.
// Amounts that round to zero are rejected so stored amounts stay positive.
func ValidateAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || !AmountInRange(amount) {
		return decimal.Zero, &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}

	amount = amount.Round(AmountScale)
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(MaxAmount) {
		return decimal.Zero, &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}

	return amount, nil
}

// AmountInRange reports whether d has a bounded exponent and a magnitude of at
// most MaxAmount. It is cheap for any parsed value, however large its exponent.
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxAmountExponent || exp < minAmountExponent {
		return false
	}
	return d.Abs().LessThanOrEqual(MaxAmount)
}

// ClampDescription truncates input to MaxDescriptionLength runes, the way an input
// field with a maxlength attribute does.
func ClampDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxDescriptionLength])
}

package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateEntry(t *testing.T) {
	t.Parallel()

	t.Run("valid input is normalised", func(t *testing.T) {
		got, err := ValidateEntry(EntryInput{Type: "expense", Description: "  Rent ", Amount: " 15000.456 "})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Description != "Rent" {
			t.Fatalf("expected trimmed description, got %q", got.Description)
		}
		if !got.Amount.Equal(decimal.RequireFromString("15000.46")) {
			t.Fatalf("expected amount rounded to 15000.46, got %s", got.Amount)
		}
		if got.Type != EntryTypeExpense {
			t.Fatalf("expected expense, got %s", got.Type)
		}
	})

	rejected := []struct {
		name  string
		input EntryInput
		want  error
	}{
		{"zero amount", EntryInput{Type: "income", Description: "Salary", Amount: "0"}, ErrInvalidAmount},
		{"negative amount", EntryInput{Type: "income", Description: "Salary", Amount: "-5"}, ErrInvalidAmount},
		{"non numeric amount", EntryInput{Type: "income", Description: "Salary", Amount: "abc"}, ErrInvalidAmount},
		{"blank amount", EntryInput{Type: "income", Description: "Salary", Amount: "  "}, ErrInvalidAmount},
		{"huge exponent amount", EntryInput{Type: "income", Description: "Salary", Amount: "1e2000000"}, ErrInvalidAmount},
		{"tiny exponent amount", EntryInput{Type: "income", Description: "Salary", Amount: "1e-2000000"}, ErrInvalidAmount},
		{"amount above max", EntryInput{Type: "income", Description: "Salary", Amount: "9007199254740992"}, ErrInvalidAmount},
		{"amount rounding above max", EntryInput{Type: "income", Description: "Salary", Amount: "9007199254740991.999"}, ErrInvalidAmount},
		{"amount rounding to zero", EntryInput{Type: "income", Description: "Salary", Amount: "0.004"}, ErrInvalidAmount},
		{"whitespace description", EntryInput{Type: "income", Description: "   ", Amount: "10"}, ErrEmptyDescription},
		{"unknown type", EntryInput{Type: "transfer", Description: "Salary", Amount: "10"}, ErrInvalidType},
		{"capitalised type", EntryInput{Type: "Income", Description: "Salary", Amount: "10"}, ErrInvalidType},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateEntry(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateEntryChecksDescriptionFirst(t *testing.T) {
	t.Parallel()

	_, err := ValidateEntry(EntryInput{Type: "bogus", Description: "", Amount: "abc"})
	if !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected description failure first, got %v", err)
	}
}

func TestValidationErrorMessages(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	if err.Reason() != "invalid_amount" {
		t.Fatalf("unexpected reason %q", err.Reason())
	}
	if err.UserMessage() != "Please enter a valid positive amount." {
		t.Fatalf("unexpected message %q", err.UserMessage())
	}
	if !strings.HasPrefix(err.Error(), "amount: ") {
		t.Fatalf("expected field prefix, got %q", err.Error())
	}
}

func TestClampDescription(t *testing.T) {
	t.Parallel()

	if got := ClampDescription("short"); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	long := strings.Repeat("₹", MaxDescriptionLength+5)
	got := ClampDescription(long)
	if got != strings.Repeat("₹", MaxDescriptionLength) {
		t.Fatalf("expected %d runes, got %q", MaxDescriptionLength, got)
	}
}

package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateAccountName("Kas Operasional"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateAccountName("   ")
		if !errors.Is(err, ErrInvalidAccountName) {
			t.Fatalf("expected ErrInvalidAccountName, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxAccountNameLength+1)
		err := ValidateAccountName(tooLong)
		if !errors.Is(err, ErrInvalidAccountName) {
			t.Fatalf("expected ErrInvalidAccountName, got %v", err)
		}
	})
}

func TestValidateCurrency(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"IDR", "USD", "SGD"} {
		if err := ValidateCurrency(code); err != nil {
			t.Errorf("expected %s to be valid, got %v", code, err)
		}
	}

	for _, code := range []string{"", "idr", "RUPIAH", "US"} {
		if err := ValidateCurrency(code); !errors.Is(err, ErrInvalidCurrency) {
			t.Errorf("expected %q to be rejected, got %v", code, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   error
	}{
		{"positive", decimal.RequireFromString("0.01"), nil},
		{"zero", decimal.Zero, ErrInvalidAmount},
		{"negative", decimal.NewFromInt(-5), ErrInvalidAmount},
		{"too large", decimal.RequireFromString("10000000000000000"), ErrAmountTooLarge},
		{"trailing zeros", decimal.RequireFromString("1.500"), nil},
		{"sub-cent", decimal.RequireFromString("0.006"), ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateEmailAndPassword(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("finance@example.co.id"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	if err := ValidateEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
	if err := ValidatePassword("longenough"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
	}{
		{"defaults", 0, 0, 1, 10, 0},
		{"third page", 3, 20, 3, 20, 40},
		{"limit capped", 1, 5000, 1, MaxLimit, 0},
		{"negative page", -2, 10, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, offset := NormalizePage(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", page, limit, offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	t.Parallel()

	info := NewPageInfo(21, 2, 10)
	if info.TotalPages != 3 || info.TotalItems != 21 || info.CurrentPage != 2 || info.ItemsPerPage != 10 {
		t.Fatalf("unexpected page info: %+v", info)
	}

	if empty := NewPageInfo(0, 1, 10); empty.TotalPages != 0 {
		t.Fatalf("expected zero pages for empty listing, got %d", empty.TotalPages)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("missing required fields", "amount", "created_by")

	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected ValidationError to unwrap to ErrValidation")
	}
	if got := FieldsOf(err); len(got) != 2 || got[0] != "amount" {
		t.Fatalf("unexpected fields: %v", got)
	}
	if FieldsOf(ErrAccountNotFound) != nil {
		t.Fatal("expected no fields for a sentinel")
	}
}

package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrAmountPrecision    = errors.New("amount has too many decimal places")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooWeak    = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxAccountNameLength = 100
	MaxAmount            = "9999999999999999.99" // DECIMAL(18,2)
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
)

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	maxAmount     = decimal.RequireFromString(MaxAmount)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateCurrency validates an ISO 4217 style currency code
func ValidateCurrency(currency string) error {
	if !currencyRegex.MatchString(currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return nil
}

// ValidateAmount checks that amount is positive and fits a money column.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	// Entries and balances are stored with AmountScale places.
	if !fitsScale(amount, AmountScale) {
		return fmt.Errorf("%w: at most %d are stored", ErrAmountPrecision, AmountScale)
	}

	return nil
}

func fitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// NormalizePage applies pagination defaults and bounds and returns page,
// limit and the matching row offset.
func NormalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = DefaultPage
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return page, limit, (page - 1) * limit
}

// PageInfo describes a page of a listing.
type PageInfo struct {
	TotalItems   int64
	TotalPages   int
	CurrentPage  int
	ItemsPerPage int
}

// NewPageInfo computes page metadata for total items.
func NewPageInfo(total int64, page, limit int) PageInfo {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PageInfo{
		TotalItems:   total,
		TotalPages:   pages,
		CurrentPage:  page,
		ItemsPerPage: limit,
	}
}

package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is the parent of every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidAccountType   = errors.New("account type must be Capital or Operational")
	ErrDuplicateAccountName = errors.New("account name already exists")
	ErrAccountInUse         = errors.New("account is referenced by ledger entries")
	ErrInsufficientFunds    = errors.New("insufficient balance in source account")

	// Transaction errors
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionInUse      = errors.New("transaction is referenced by another record")
	ErrInvalidEntryType      = errors.New("entry type must be Debit or Credit")
	ErrUnbalancedTransaction = errors.New("total debits must equal total credits")
	ErrDuplicateReference    = errors.New("reference number already exists")

	// Transfer errors
	ErrSameAccount      = errors.New("source and destination accounts must be different")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrTransferNotFound = errors.New("transfer not found")

	// Interest errors
	ErrInterestConfigNotFound      = errors.New("interest configuration not found")
	ErrInterestConfigInactive      = errors.New("interest configuration not found or inactive")
	ErrInvalidCalculationType      = errors.New("calculation type must be Annual, Monthly or Daily")
	ErrInvalidRate                 = errors.New("rate percentage must be between 0 and 9.9999")
	ErrDuplicateInterestConfigName = errors.New("interest configuration name already exists")
	ErrInterestConfigInUse         = errors.New("interest configuration is referenced by interest periods")
	ErrInvalidInterestPeriod       = errors.New("interest end date must not precede start date")

	// Purchase order errors
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrOverpayment           = errors.New("payment exceeds outstanding purchase order amount")

	// ErrPaymentTransactionLocked guards PO payment postings, whose amount
	// must match what was added to the PO's paid amount.
	ErrPaymentTransactionLocked = errors.New("purchase order payment postings cannot be deleted or re-posted")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username or email already exists")
	ErrUserInactive      = errors.New("user account is inactive")
)

// ValidationError reports a missing or malformed input together with the
// offending field names.
type ValidationError struct {
	Fields  []string
	Message string
}

// NewValidationError creates a ValidationError for the given fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldsOf returns the offending field names when err carries them.
func FieldsOf(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account. Any
// current_balance sent by the client is ignored.
type CreateAccountRequest struct {
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Currency    string `json:"currency,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:        r.AccountName,
		AccountType: domain.AccountType(r.AccountType),
		Currency:    r.Currency,
		IsActive:    r.IsActive,
	}
}

// UpdateAccountRequest represents a partial account update.
type UpdateAccountRequest struct {
	AccountName *string `json:"account_name,omitempty"`
	AccountType *string `json:"account_type,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	input := usecase.UpdateAccountInput{
		Name:     r.AccountName,
		Currency: r.Currency,
		IsActive: r.IsActive,
	}
	if r.AccountType != nil {
		t := domain.AccountType(*r.AccountType)
		input.AccountType = &t
	}
	return input
}

// EntryRequest is one ledger line of a transaction request.
type EntryRequest struct {
	AccountID         string          `json:"account_id"`
	Amount            decimal.Decimal `json:"amount"`
	EntryType         string          `json:"entry_type"`
	RelatedEntityType string          `json:"related_entity_type,omitempty"`
	RelatedEntityID   string          `json:"related_entity_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

func entryInputs(entries []EntryRequest) []usecase.EntryInput {
	if entries == nil {
		return nil
	}
	inputs := make([]usecase.EntryInput, len(entries))
	for i, e := range entries {
		inputs[i] = usecase.EntryInput{
			AccountID:         e.AccountID,
			Amount:            e.Amount,
			EntryType:         domain.EntryType(e.EntryType),
			RelatedEntityType: e.RelatedEntityType,
			RelatedEntityID:   e.RelatedEntityID,
			Notes:             e.Notes,
		}
	}
	return inputs
}

// CreateTransactionRequest represents a request to post a transaction.
type CreateTransactionRequest struct {
	TransactionDate *Timestamp     `json:"transaction_date"`
	TransactionType string         `json:"transaction_type"`
	Description     string         `json:"description"`
	Notes           string         `json:"notes,omitempty"`
	CreatedBy       string         `json:"created_by,omitempty"`
	RelatedPOID     string         `json:"related_po_id,omitempty"`
	ReferenceNumber string         `json:"reference_number,omitempty"`
	Entries         []EntryRequest `json:"entries"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		TransactionDate: r.TransactionDate.Ptr(),
		TransactionType: r.TransactionType,
		Description:     r.Description,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,
		RelatedPOID:     r.RelatedPOID,
		ReferenceNumber: r.ReferenceNumber,
		Entries:         entries,
	}
}

// UpdateTransactionRequest patches a transaction. Omitted fields keep their
// stored values. An "entries" array, even an empty one, replaces the whole
// entry set; omitting it keeps the entries and total amount.
type UpdateTransactionRequest struct {
	TransactionDate *Timestamp      `json:"transaction_date,omitempty"`
	TransactionType *string         `json:"transaction_type,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedBy       *string         `json:"created_by,omitempty"`
	RelatedPOID     *string         `json:"related_po_id,omitempty"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	Entries         *[]EntryRequest `json:"entries,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() usecase.UpdateTransactionInput {
	var entries *[]usecase.EntryInput
	if r.Entries != nil {
		inputs := entryInputs(*r.Entries)
		if inputs == nil {
			inputs = []usecase.EntryInput{}
		}
		entries = &inputs
	}

	return usecase.UpdateTransactionInput{
		TransactionDate: r.TransactionDate.Ptr(),
		TransactionType: r.TransactionType,
		Description:     r.Description,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,
		RelatedPOID:     r.RelatedPOID,
		ReferenceNumber: r.ReferenceNumber,
		Entries:         entries,
	}
}

// TransferRequest represents a request to move funds between two accounts.
type TransferRequest struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description,omitempty"`
	TransactionDate      *Timestamp      `json:"transaction_date,omitempty"`
	CreatedBy            string          `json:"created_by,omitempty"`
	ApplyInterest        bool            `json:"apply_interest"`
	InterestConfigID     string          `json:"interest_config_id,omitempty"`
	InterestStartDate    *Date           `json:"interest_start_date,omitempty"`
	InterestEndDate      *Date           `json:"interest_end_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		Description:          r.Description,
		TransactionDate:      r.TransactionDate.Ptr(),
		CreatedBy:            r.CreatedBy,
		ApplyInterest:        r.ApplyInterest,
		InterestConfigID:     r.InterestConfigID,
		InterestStartDate:    r.InterestStartDate.Ptr(),
		InterestEndDate:      r.InterestEndDate.Ptr(),
	}
}

// CreateInterestConfigRequest represents a request to create an interest
// configuration.
type CreateInterestConfigRequest struct {
	ConfigName      string           `json:"config_name"`
	RatePercentage  *decimal.Decimal `json:"rate_percentage"`
	CalculationType string           `json:"calculation_type"`
	Description     string           `json:"description,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInterestConfigRequest) ToUseCaseInput() usecase.CreateInterestConfigInput {
	return usecase.CreateInterestConfigInput{
		Name:            r.ConfigName,
		RatePercentage:  r.RatePercentage,
		CalculationType: domain.CalculationType(r.CalculationType),
		Description:     r.Description,
		IsActive:        r.IsActive,
	}
}

// UpdateInterestConfigRequest represents a partial interest configuration
// update.
type UpdateInterestConfigRequest struct {
	ConfigName      *string          `json:"config_name,omitempty"`
	RatePercentage  *decimal.Decimal `json:"rate_percentage,omitempty"`
	CalculationType *string          `json:"calculation_type,omitempty"`
	Description     *string          `json:"description,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateInterestConfigRequest) ToUseCaseInput() usecase.UpdateInterestConfigInput {
	input := usecase.UpdateInterestConfigInput{
		Name:           r.ConfigName,
		RatePercentage: r.RatePercentage,
		Description:    r.Description,
		IsActive:       r.IsActive,
	}
	if r.CalculationType != nil {
		ct := domain.CalculationType(*r.CalculationType)
		input.CalculationType = &ct
	}
	return input
}

// PreviewInterestRequest asks for the interest a principal would accrue.
type PreviewInterestRequest struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	StartDate       Date            `json:"start_date"`
	EndDate         Date            `json:"end_date"`
}

// ToUseCaseInput converts to use case input.
func (r *PreviewInterestRequest) ToUseCaseInput() usecase.PreviewInterestInput {
	return usecase.PreviewInterestInput{
		Principal: r.PrincipalAmount,
		StartDate: r.StartDate.Time,
		EndDate:   r.EndDate.Time,
	}
}

// PayPurchaseOrderRequest represents a payment against a purchase order.
type PayPurchaseOrderRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *Timestamp      `json:"payment_date"`
	Description string          `json:"description,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PayPurchaseOrderRequest) ToUseCaseInput(poID string) usecase.PayPurchaseOrderInput {
	return usecase.PayPurchaseOrderInput{
		PurchaseOrderID: poID,
		AccountID:       r.AccountID,
		Amount:          r.Amount,
		PaymentDate:     r.PaymentDate.Ptr(),
		Description:     r.Description,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,
	}
}

// RegisterRequest represents a user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

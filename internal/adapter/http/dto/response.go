package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	AccountID      string          `json:"account_id"`
	AccountName    string          `json:"account_name"`
	AccountType    string          `json:"account_type"`
	Currency       string          `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID:      a.ID,
		AccountName:    a.Name,
		AccountType:    string(a.Type),
		Currency:       a.Currency,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	EntryID           string          `json:"entry_id"`
	TransactionID     string          `json:"transaction_id"`
	AccountID         string          `json:"account_id"`
	AccountName       string          `json:"account_name,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	EntryType         string          `json:"entry_type"`
	RelatedEntityType string          `json:"related_entity_type,omitempty"`
	RelatedEntityID   string          `json:"related_entity_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.TransactionEntry) *EntryResponse {
	return &EntryResponse{
		EntryID:           e.ID,
		TransactionID:     e.TransactionID,
		AccountID:         e.AccountID,
		AccountName:       e.AccountName,
		Amount:            e.Amount,
		EntryType:         string(e.EntryType),
		RelatedEntityType: e.RelatedEntityType,
		RelatedEntityID:   e.RelatedEntityID,
		Notes:             e.Notes,
		CreatedAt:         e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.TransactionEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransactionResponse represents a transaction header with its entries.
type TransactionResponse struct {
	TransactionID     string           `json:"transaction_id"`
	TransactionDate   Timestamp        `json:"transaction_date"`
	TransactionType   string           `json:"transaction_type"`
	Description       string           `json:"description"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	Notes             string           `json:"notes,omitempty"`
	CreatedBy         string           `json:"created_by"`
	CreatedByUsername string           `json:"created_by_username,omitempty"`
	RelatedPOID       string           `json:"related_po_id,omitempty"`
	ReferenceNumber   string           `json:"reference_number,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Entries           []*EntryResponse `json:"entries"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		TransactionID:     t.ID,
		TransactionDate:   NewTimestamp(t.TransactionDate),
		TransactionType:   t.TransactionType,
		Description:       t.Description,
		TotalAmount:       t.TotalAmount,
		Notes:             t.Notes,
		CreatedBy:         t.CreatedBy,
		CreatedByUsername: t.CreatedByUsername,
		RelatedPOID:       t.RelatedPOID,
		ReferenceNumber:   t.ReferenceNumber,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		Entries:           EntriesFromDomain(t.Entries),
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransferResponse is the transfer view of a Transfer transaction. The
// interest fields are only present on the detail view of a transfer that
// opened an interest period.
type TransferResponse struct {
	TransferID             string          `json:"transfer_id"`
	TransferDate           Timestamp       `json:"transfer_date"`
	SourceAccountID        string          `json:"source_account_id"`
	SourceAccountName      string          `json:"source_account_name"`
	DestinationAccountID   string          `json:"destination_account_id"`
	DestinationAccountName string          `json:"destination_account_name"`
	Amount                 decimal.Decimal `json:"amount"`
	Description            string          `json:"description"`
	Status                 string          `json:"status"`
	CreatedBy              string          `json:"created_by"`
	CreatedByUsername      string          `json:"created_by_username"`
	CreatedAt              *time.Time      `json:"created_at,omitempty"`
	UpdatedAt              *time.Time      `json:"updated_at,omitempty"`

	InterestConfigName      string           `json:"interest_config_name,omitempty"`
	InterestStartDate       *Date            `json:"interest_start_date,omitempty"`
	InterestEndDate         *Date            `json:"interest_end_date,omitempty"`
	InterestRatePercentage  *decimal.Decimal `json:"interest_rate_percentage,omitempty"`
	InterestCalculationType string           `json:"interest_calculation_type,omitempty"`
	InterestAmount          string           `json:"interest_amount,omitempty"`
}

// TransferFromDomain converts a domain transfer to its list item response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		TransferID:             t.ID,
		TransferDate:           NewTimestamp(t.Date),
		SourceAccountID:        t.SourceAccountID,
		SourceAccountName:      t.SourceAccountName,
		DestinationAccountID:   t.DestinationAccountID,
		DestinationAccountName: t.DestinationAccountName,
		Amount:                 t.Amount,
		Description:            t.Description,
		Status:                 t.Status,
		CreatedBy:              t.CreatedBy,
		CreatedByUsername:      t.CreatedByUsername,
	}
}

// TransferDetailFromDomain converts a domain transfer to its detail response.
// The interest amount is rendered rounded to whole units.
func TransferDetailFromDomain(t *domain.Transfer) *TransferResponse {
	resp := TransferFromDomain(t)
	createdAt, updatedAt := t.CreatedAt, t.UpdatedAt
	resp.CreatedAt = &createdAt
	resp.UpdatedAt = &updatedAt

	if i := t.Interest; i != nil {
		start, end := NewDate(i.StartDate), NewDate(i.EndDate)
		rate := i.RatePercentage
		resp.InterestConfigName = i.ConfigName
		resp.InterestStartDate = &start
		resp.InterestEndDate = &end
		resp.InterestRatePercentage = &rate
		resp.InterestCalculationType = string(i.CalculationType)
		resp.InterestAmount = i.Amount.StringFixed(0)
	}

	return resp
}

// TransfersFromDomain converts domain transfers to list responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// InterestPeriodResponse represents an account interest period.
type InterestPeriodResponse struct {
	PeriodID                     string          `json:"period_id"`
	AccountID                    string          `json:"account_id"`
	InterestConfigID             string          `json:"interest_config_id"`
	StartDate                    Date            `json:"start_date"`
	EndDate                      Date            `json:"end_date"`
	ActualEndDate                *Date           `json:"actual_end_date"`
	InitialTransferTransactionID string          `json:"initial_transfer_transaction_id"`
	PrincipalAmount              decimal.Decimal `json:"principal_amount"`
	Status                       string          `json:"status"`
	CreatedAt                    time.Time       `json:"created_at"`
}

// InterestPeriodFromDomain converts domain interest period to response.
func InterestPeriodFromDomain(p *domain.AccountInterestPeriod) *InterestPeriodResponse {
	if p == nil {
		return nil
	}
	return &InterestPeriodResponse{
		PeriodID:                     p.ID,
		AccountID:                    p.AccountID,
		InterestConfigID:             p.InterestConfigID,
		StartDate:                    NewDate(p.StartDate),
		EndDate:                      NewDate(p.EndDate),
		ActualEndDate:                datePtr(p.ActualEndDate),
		InitialTransferTransactionID: p.InitialTransferTransactionID,
		PrincipalAmount:              p.PrincipalAmount,
		Status:                       string(p.Status),
		CreatedAt:                    p.CreatedAt,
	}
}

// TransferResultResponse is returned by a successful transfer.
type TransferResultResponse struct {
	TransferTransaction *TransactionResponse    `json:"transfer_transaction"`
	InterestPeriod      *InterestPeriodResponse `json:"interest_period"`
	InterestTransaction *TransactionResponse    `json:"interest_transaction"`
	InterestAmount      *decimal.Decimal        `json:"interest_amount,omitempty"`
}

// TransferResultFromUseCase converts a transfer result to response.
func TransferResultFromUseCase(r *usecase.TransferResult) *TransferResultResponse {
	resp := &TransferResultResponse{
		TransferTransaction: TransactionFromDomain(r.Transaction),
		InterestPeriod:      InterestPeriodFromDomain(r.InterestPeriod),
		InterestTransaction: TransactionFromDomain(r.InterestTransaction),
	}
	if r.InterestPeriod != nil {
		amount := r.InterestAmount
		resp.InterestAmount = &amount
	}
	return resp
}

// InterestConfigResponse represents an interest configuration.
type InterestConfigResponse struct {
	InterestConfigID string          `json:"interest_config_id"`
	ConfigName       string          `json:"config_name"`
	RatePercentage   decimal.Decimal `json:"rate_percentage"`
	CalculationType  string          `json:"calculation_type"`
	Description      string          `json:"description"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// InterestConfigFromDomain converts domain configuration to response.
func InterestConfigFromDomain(c *domain.InterestConfiguration) *InterestConfigResponse {
	return &InterestConfigResponse{
		InterestConfigID: c.ID,
		ConfigName:       c.Name,
		RatePercentage:   c.RatePercentage,
		CalculationType:  string(c.CalculationType),
		Description:      c.Description,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// InterestConfigsFromDomain converts domain configurations to responses.
func InterestConfigsFromDomain(configs []*domain.InterestConfiguration) []*InterestConfigResponse {
	result := make([]*InterestConfigResponse, len(configs))
	for i, c := range configs {
		result[i] = InterestConfigFromDomain(c)
	}
	return result
}

// InterestPreviewResponse is the read-only result of the interest calculator.
type InterestPreviewResponse struct {
	InterestConfigID string          `json:"interest_config_id"`
	CalculationType  string          `json:"calculation_type"`
	RatePercentage   decimal.Decimal `json:"rate_percentage"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	StartDate        Date            `json:"start_date"`
	EndDate          Date            `json:"end_date"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
}

// InterestPreviewFromUseCase converts a preview to response.
func InterestPreviewFromUseCase(p *usecase.InterestPreview) *InterestPreviewResponse {
	return &InterestPreviewResponse{
		InterestConfigID: p.Config.ID,
		CalculationType:  string(p.Config.CalculationType),
		RatePercentage:   p.Config.RatePercentage,
		PrincipalAmount:  p.Principal,
		StartDate:        NewDate(p.StartDate),
		EndDate:          NewDate(p.EndDate),
		InterestAmount:   p.Amount,
	}
}

// PurchaseOrderResponse carries the payment columns of a purchase order.
type PurchaseOrderResponse struct {
	POID          string          `json:"po_id"`
	PONumber      string          `json:"po_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaymentStatus string          `json:"payment_status"`
}

// PaymentResponse is returned by a purchase order payment.
type PaymentResponse struct {
	PurchaseOrder *PurchaseOrderResponse `json:"purchase_order"`
	Transaction   *TransactionResponse   `json:"transaction"`
}

// PaymentFromUseCase converts a payment result to response.
func PaymentFromUseCase(r *usecase.PaymentResult) *PaymentResponse {
	po := r.PurchaseOrder
	return &PaymentResponse{
		PurchaseOrder: &PurchaseOrderResponse{
			POID:          po.ID,
			PONumber:      po.PONumber,
			TotalAmount:   po.TotalAmount,
			PaidAmount:    po.PaidAmount,
			PaymentStatus: string(po.PaymentStatus),
		},
		Transaction: TransactionFromDomain(r.Transaction),
	}
}

// ReconciliationResponse represents the reconciliation of one account.
type ReconciliationResponse struct {
	AccountID         string          `json:"account_id"`
	AccountName       string          `json:"account_name"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		AccountName:       r.AccountName,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse summarizes reconciliation of every account.
type ReconciliationReportResponse struct {
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	LedgerConsistent   bool                      `json:"ledger_consistent"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a report to response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromUseCase(d)
	}
	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		LedgerConsistent:   r.LedgerConsistent,
		CheckedAt:          r.CheckedAt,
	}
}

// ConsistencyResponse reports whether balances match the entry log.
type ConsistencyResponse struct {
	TotalBalances decimal.Decimal `json:"total_balances"`
	TotalDebits   decimal.Decimal `json:"total_debits"`
	TotalCredits  decimal.Decimal `json:"total_credits"`
	Difference    decimal.Decimal `json:"difference"`
	IsConsistent  bool            `json:"is_consistent"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		TotalBalances: r.TotalBalances,
		TotalDebits:   r.TotalDebits,
		TotalCredits:  r.TotalCredits,
		Difference:    r.Difference,
		IsConsistent:  r.IsConsistent,
	}
}

// UserResponse represents a user without credentials.
type UserResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresIn int64         `json:"expires_in"`
	User      *UserResponse `json:"user"`
}

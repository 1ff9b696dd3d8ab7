package domain

import "time"

// Event types
const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeTransactionUpdated = "transaction.updated"
	EventTypeTransactionDeleted = "transaction.deleted"
	EventTypeTransferCompleted  = "transfer.completed"
	EventTypeInterestPeriodOpen = "interest_period.opened"
	EventTypePurchaseOrderPaid  = "purchase_order.paid"
	EventTypeAccountCreated     = "account.created"
)

// Aggregate types
const (
	AggregateTypeTransaction    = "transaction"
	AggregateTypeInterestPeriod = "interest_period"
	AggregateTypePurchaseOrder  = "purchase_order"
	AggregateTypeAccount        = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewOutboxEvent builds an unpublished event.
func NewOutboxEvent(id, aggregateType, aggregateID, eventType string, payload map[string]any, at time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     at,
	}
}

// TransactionPayload is the event payload of a transaction mutation.
func TransactionPayload(t *Transaction) map[string]any {
	entries := make([]map[string]any, 0, len(t.Entries))
	for _, e := range t.Entries {
		entries = append(entries, map[string]any{
			"entry_id":   e.ID,
			"account_id": e.AccountID,
			"amount":     e.Amount.String(),
			"entry_type": string(e.EntryType),
		})
	}

	return map[string]any{
		"transaction_id":   t.ID,
		"transaction_type": t.TransactionType,
		"total_amount":     t.TotalAmount.String(),
		"created_by":       t.CreatedBy,
		"entries":          entries,
	}
}

package dto

import "github.com/iho/fundledger/internal/domain"

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope wraps every API response.
type Envelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    any          `json:"data"`
	Errors  *ErrorDetail `json:"errors"`
	Meta    *Meta        `json:"meta"`
}

// ErrorDetail lists the offending fields of a failed request.
type ErrorDetail struct {
	Fields  []string `json:"fields,omitempty"`
	Message string   `json:"message"`
}

// Meta carries pagination metadata.
type Meta struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// MetaFromPage converts domain page info to response metadata.
func MetaFromPage(p domain.PageInfo) *Meta {
	return &Meta{
		TotalItems:   p.TotalItems,
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
		ItemsPerPage: p.ItemsPerPage,
	}
}

// Success builds a success envelope.
func Success(message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// Failure builds an error envelope. Status is "fail" for client errors and
// "error" for server errors.
func Failure(httpStatus int, message string, detail *ErrorDetail) Envelope {
	status := StatusFail
	if httpStatus >= 500 {
		status = StatusError
	}
	return Envelope{Status: status, Message: message, Errors: detail}
}

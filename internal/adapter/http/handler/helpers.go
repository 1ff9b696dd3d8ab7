package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

const internalErrorMessage = "internal server error"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, dto.Success(message, data))
}

// respondPage writes a success envelope with pagination metadata.
func respondPage(w http.ResponseWriter, message string, data any, page domain.PageInfo) {
	env := dto.Success(message, data)
	env.Meta = dto.MetaFromPage(page)
	writeJSON(w, http.StatusOK, env)
}

// respondError maps err to a status code and writes a failure envelope.
// Server errors are logged and answered with a generic message.
func respondError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := mapDomainError(err)

	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(message)
		writeJSON(w, status, dto.Failure(status, message, &dto.ErrorDetail{Message: internalErrorMessage}))
		return
	}

	writeJSON(w, status, dto.Failure(status, message, &dto.ErrorDetail{
		Fields:  errorFields(err),
		Message: err.Error(),
	}))
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountPrecision),
		errors.Is(err, domain.ErrInvalidEntryType),
		errors.Is(err, domain.ErrUnbalancedTransaction),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidCalculationType),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrInvalidInterestPeriod),
		errors.Is(err, domain.ErrOverpayment),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, domain.ErrInterestConfigNotFound),
		errors.Is(err, domain.ErrInterestConfigInactive),
		errors.Is(err, domain.ErrPurchaseOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateAccountName),
		errors.Is(err, domain.ErrAccountInUse),
		errors.Is(err, domain.ErrTransactionInUse),
		errors.Is(err, domain.ErrDuplicateReference),
		errors.Is(err, domain.ErrDuplicateInterestConfigName),
		errors.Is(err, domain.ErrInterestConfigInUse),
		errors.Is(err, domain.ErrPaymentTransactionLocked),
		errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fallbackFields names the field behind sentinels raised without a
// *domain.ValidationError.
var fallbackFields = []struct {
	err   error
	field string
}{
	{domain.ErrInvalidAccountName, "account_name"},
	{domain.ErrInvalidAccountType, "account_type"},
	{domain.ErrInvalidCurrency, "currency"},
	{domain.ErrInvalidAmount, "amount"},
	{domain.ErrAmountTooLarge, "amount"},
	{domain.ErrAmountPrecision, "amount"},
	{domain.ErrInvalidEntryType, "entry_type"},
	{domain.ErrUnbalancedTransaction, "entries"},
	{domain.ErrSameAccount, "destination_account_id"},
	{domain.ErrInsufficientFunds, "amount"},
	{domain.ErrInvalidCalculationType, "calculation_type"},
	{domain.ErrInvalidRate, "rate_percentage"},
	{domain.ErrInvalidInterestPeriod, "interest_end_date"},
	{domain.ErrOverpayment, "amount"},
	{domain.ErrInvalidEmail, "email"},
	{domain.ErrPasswordTooWeak, "password"},
}

func errorFields(err error) []string {
	if fields := domain.FieldsOf(err); len(fields) > 0 {
		return fields
	}
	for _, f := range fallbackFields {
		if errors.Is(err, f.err) {
			return []string{f.field}
		}
	}
	return nil
}

// decodeJSON reads the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return unmarshalBody(body, v)
}

// decodeValidated checks the request body against schema before decoding it
// into v.
func decodeValidated(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := dto.ValidateBody(schema, body); err != nil {
		return err
	}
	return unmarshalBody(body, v)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewValidationError("request body too large or unreadable", "body")
	}
	if len(body) == 0 {
		return nil, domain.NewValidationError("request body is required", "body")
	}
	return body, nil
}

func unmarshalBody(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError("invalid request body: "+err.Error(), typeErr.Field)
		}
		return domain.NewValidationError("invalid request body: "+err.Error(), "body")
	}
	return nil
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBoolQuery parses an optional boolean query parameter.
func parseBoolQuery(r *http.Request, key string) (*bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, domain.NewValidationError("invalid boolean query parameter", key)
	}
	return &b, nil
}

// parseDateQuery parses an optional date query parameter.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	d, err := dto.ParseDate(val)
	if err != nil {
		return nil, domain.NewValidationError("invalid date query parameter", key)
	}
	return &d.Time, nil
}

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iho/fundledger/internal/adapter/http/dto"
)

// writeFailure writes a failure envelope.
func writeFailure(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.Failure(status, message, &dto.ErrorDetail{Message: detail}))
}

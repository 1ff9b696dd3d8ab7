package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"

	// IdempotencyReplayHeader marks a replayed response.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// storedResponse is what gets kept under an idempotency key.
type storedResponse struct {
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
}

// IdempotencyMiddleware replays responses of POST and PUT requests that
// carry an Idempotency-Key header.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A zero ttl
// falls back to usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		// keys are scoped to the endpoint
		key = r.Method + ":" + r.URL.Path + ":" + key

		logger := zerolog.Ctx(r.Context())

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			logger.Error().Err(err).Msg("idempotency check failed")
			writeFailure(w, http.StatusInternalServerError, "idempotency check failed", "internal server error")
			return
		}

		if exists {
			if string(cached) == usecase.IdempotencyPending {
				writeFailure(w, http.StatusConflict, "request in progress", "a request with this idempotency key is still being processed")
				return
			}

			var stored storedResponse
			if err := json.Unmarshal(cached, &stored); err != nil {
				logger.Error().Err(err).Msg("corrupt idempotency record")
				writeFailure(w, http.StatusInternalServerError, "idempotency check failed", "internal server error")
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(IdempotencyReplayHeader, "true")
			w.WriteHeader(stored.StatusCode)
			w.Write(stored.Body)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			if err := m.store.Release(r.Context(), key); err != nil {
				logger.Warn().Err(err).Msg("failed to release idempotency key")
			}
			return
		}

		record, err := json.Marshal(storedResponse{StatusCode: recorder.statusCode, Body: recorder.body.Bytes()})
		if err == nil {
			err = m.store.Update(r.Context(), key, record, m.ttl)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("failed to store idempotent response")
		}
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

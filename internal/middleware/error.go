package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"stockroom/internal/apperrors"
	"stockroom/internal/dispatch"
	"stockroom/internal/domain"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// RespondWithError sends a structured error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithErrorDetails(w, statusCode, message, nil)
}

// respondWithErrorDetails sends a structured error response with additional details
func respondWithErrorDetails(w http.ResponseWriter, statusCode int, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: ErrorDetail{
			Code:      http.StatusText(statusCode),
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	json.NewEncoder(w).Encode(response)
}

// WriteError maps a dispatch failure to an HTTP response. Validation and
// not-found failures are client-facing with structured detail; anything else
// is reported generically without leaking internals.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		details := map[string]interface{}{"validation_errors": ve.Violations}
		respondWithErrorDetails(w, http.StatusBadRequest, "validation failed", details)
		return
	}

	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		RespondWithError(w, http.StatusNotFound, nf.Error())
		return
	}

	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		RespondWithError(w, http.StatusConflict, conflict.Error())
		return
	}

	// Entity-level validation failures surface as 400s.
	if errors.Is(err, domain.ErrInvalidProduct) || errors.Is(err, domain.ErrInvalidCategory) {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errors.Is(err, dispatch.ErrNoHandler) {
		logger.Error("No handler for request", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Error("Request failed", zap.Error(err))
	RespondWithError(w, http.StatusInternalServerError, "internal server error")
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

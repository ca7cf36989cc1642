package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error             string   `json:"error"`                         // Machine-readable error code
	Message           string   `json:"message"`                       // Human-readable message
	Details           string   `json:"details,omitempty"`             // Optional additional context
	Field             string   `json:"field,omitempty"`               // Offending field for validation errors
	Reasons           []string `json:"reasons,omitempty"`             // Failed password rules
	RetryAfterSeconds *int     `json:"retry_after_seconds,omitempty"` // Set while a login is locked
	AttemptsRemaining *int     `json:"attempts_remaining,omitempty"`  // Set on invalid credentials
}

// WriteError writes a JSON error response with the given status code
func WriteError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	WriteErrorWithDetails(w, statusCode, errorCode, message, "")
}

// WriteErrorWithDetails writes a JSON error response with additional details
func WriteErrorWithDetails(w http.ResponseWriter, statusCode int, errorCode, message, details string) {
	WriteErrorResponse(w, statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
		Details: details,
	})
}

// WriteErrorResponse writes a fully populated error envelope
func WriteErrorResponse(w http.ResponseWriter, statusCode int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	if resp.RetryAfterSeconds != nil {
		w.Header().Set("Retry-After", strconv.Itoa(*resp.RetryAfterSeconds))
	}
	w.WriteHeader(statusCode)

	// Encoding errors are not exposed to the client
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON success response
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// Common error writers for consistency
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

func WriteValidationError(w http.ResponseWriter, field, message string) {
	WriteErrorResponse(w, http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: message,
		Field:   field,
	})
}

func WritePasswordPolicyViolation(w http.ResponseWriter, reasons []string) {
	WriteErrorResponse(w, http.StatusBadRequest, ErrorResponse{
		Error:   "password_policy_violation",
		Message: "Password does not meet the policy",
		Reasons: reasons,
	})
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message)
}

func WriteInvalidCredentials(w http.ResponseWriter, attemptsRemaining int) {
	WriteErrorResponse(w, http.StatusUnauthorized, ErrorResponse{
		Error:             "invalid_credentials",
		Message:           "Invalid login name or password",
		AttemptsRemaining: &attemptsRemaining,
	})
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message)
}

func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", message)
}

func WriteLockedOut(w http.ResponseWriter, retryAfterSeconds int) {
	WriteErrorResponse(w, http.StatusTooManyRequests, ErrorResponse{
		Error:             "locked_out",
		Message:           "Too many failed login attempts, try again later",
		RetryAfterSeconds: &retryAfterSeconds,
	})
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwesterdijk/spullendelen/internal/database"
	"github.com/mwesterdijk/spullendelen/internal/store"
)

// apiError is the error envelope every failing request gets. Code is a
// stable machine-readable kind; clients can branch on it without parsing
// Message.
type apiError struct {
	Message  string `json:"message"`
	Code     string `json:"code"`
	Datetime string `json:"datetime"`
}

const (
	codeValidation = "VALIDATION_FAILED"
	codeNotFound   = "NOT_FOUND"
	codeOwnership  = "OWNERSHIP_CONFLICT"
	codeDuplicate  = "DUPLICATE_REGISTRATION"
	codeEmailTaken = "EMAIL_TAKEN"
	codeStore      = "STORE_FAILURE"
	codeNoConn     = "NO_CONNECTION"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeResult writes a 200 {"result": v} success envelope.
func writeResult(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, map[string]any{"result": v})
}

// writeStatus writes a 200 {"status": v} success envelope (insert results).
func writeStatus(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, map[string]any{"status": v})
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{
		Message:  message,
		Code:     code,
		Datetime: time.Now().UTC().Format(time.RFC3339),
	})
}

// writeValidationError reports a request rejected before any store access.
func writeValidationError(w http.ResponseWriter, message string) {
	writeAPIError(w, http.StatusBadRequest, codeValidation, message)
}

// writeError maps a store outcome onto a status and error envelope. Driver
// errors are logged but never shown to the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeAPIError(w, http.StatusNotFound, codeNotFound, "resource does not exist")
	case errors.Is(err, store.ErrNotOwner):
		writeAPIError(w, http.StatusConflict, codeOwnership, "you are not allowed to modify this resource")
	case errors.Is(err, store.ErrDuplicate):
		writeAPIError(w, http.StatusConflict, codeDuplicate, "you have already been registered as deler")
	case errors.Is(err, database.ErrNoConnection):
		logger.Error("no database connection", "error", err)
		writeAPIError(w, http.StatusServiceUnavailable, codeNoConn, "service temporarily unavailable")
	default:
		logger.Error("store failure", "error", err)
		writeAPIError(w, http.StatusInternalServerError, codeStore, "internal error")
	}
}

// Package api holds the shared HTTP plumbing: the response envelope, the
// global error conversion and the request middleware.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"gather/internal/apperror"
)

// Envelope is the success body every endpoint returns.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteError converts any error to the stable {statusCode, message} body.
// Untyped errors become a generic 500 so internal state never leaks.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := apperror.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}
	WriteJSON(w, appErr.Status, appErr)
}

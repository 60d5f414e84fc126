// Package api holds the JSON envelope every /api/v1 endpoint answers with.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope wraps every JSON body. Exactly one of Data and Error is set.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error carries a stable machine code plus a human message. Validation
// failures put per-field reasons in Details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(w http.ResponseWriter, data any, requestID string) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	FailWithDetails(w, status, code, message, nil, requestID)
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	write(w, status, Envelope{
		Error:     &Error{Code: code, Message: message, Details: details},
		RequestID: requestID,
	})
}

func write(w http.ResponseWriter, status int, body Envelope) {
	payload, err := json.Marshal(body)
	if err != nil {
		slog.Error("encode response", "err", err, "requestId", body.RequestID)
		status = http.StatusInternalServerError
		payload = []byte(`{"success":false,"error":{"code":"internal_error","message":"response encoding failed"}}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		slog.Debug("write response", "err", err, "requestId", body.RequestID)
	}
}

package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
)

const internalErrorMessage = "Internal server error"

// Envelope is the success body shared by every JSON endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

// ErrorBody is the failure body shared by every JSON endpoint.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteData writes a 200 envelope carrying data and an optional message.
func WriteData(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// WriteList writes a 200 envelope carrying a list and its total.
func WriteList(w http.ResponseWriter, data any, total int) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Total: &total})
}

// WriteMessage writes a 200 envelope with only a message.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// WriteError centralizes domain error translation to HTTP responses.
// Internal failures never expose their message to the client.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		msg := domainErr.Message
		if status == http.StatusInternalServerError || msg == "" {
			msg = defaultMessage(status)
		}
		WriteJSON(w, status, ErrorBody{Error: msg})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, ErrorBody{Error: internalErrorMessage})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func defaultMessage(status int) string {
	if status == http.StatusInternalServerError {
		return internalErrorMessage
	}
	return http.StatusText(status)
}

package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError carries the status code to answer with.
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func UnprocessableEntity(message string) error {
	return NewHTTPError(http.StatusUnprocessableEntity, message)
}

func BadGateway(message string) error {
	return NewHTTPError(http.StatusBadGateway, message)
}

// AsHTTPError unwraps err looking for an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// WriteError sends err as a JSON body: timeouts become 504, HTTPError keeps
// its code and anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	httpErr, ok := AsHTTPError(err)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		httpErr = &HTTPError{Code: http.StatusGatewayTimeout, Message: "Request timed out"}
	case ok:
	case err != nil:
		httpErr = &HTTPError{Code: http.StatusInternalServerError, Message: err.Error()}
	default:
		httpErr = &HTTPError{Code: http.StatusInternalServerError, Message: "Unhandled error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpErr.Code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": httpErr.Message})
}

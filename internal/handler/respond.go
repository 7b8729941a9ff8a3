package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/middleware"
)

// ErrorBody is the JSON error envelope returned by every endpoint.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine code and the human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// RespondError maps a domain error to its HTTP status and writes the JSON
// error envelope. Internal errors are logged with their cause but the client
// only sees the generic message.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	if status >= 500 {
		logger.Error("request failed", "error", err.Error(), "code", code, "status", status)
	} else {
		logger.Info("request rejected", "error", err.Error(), "code", code, "status", status)
	}

	RespondJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.EPAYMENT:
		return http.StatusPaymentRequired // 402
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable // 503
	case domain.ENOTIMPL:
		return http.StatusNotImplemented // 501
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// DecodeJSON decodes the request body into v, rejecting unknown fields and
// trailing garbage.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Invalid("handler.decode", "Request body is not valid JSON")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return domain.Invalid("handler.decode", "Request body must contain a single JSON object")
	}
	return nil
}

// sessionID pulls the cart session from the request context. The session
// middleware guarantees one exists on API routes.
func sessionID(r *http.Request) (string, error) {
	id := middleware.GetSessionID(r.Context())
	if id == "" {
		return "", errors.New("no session on request")
	}
	return id, nil
}

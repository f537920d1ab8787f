package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Error codes of the API error envelope.
const (
	codeNotFound      = "not_found"
	codeValidation    = "validation_error"
	codeBadRequest    = "bad_request"
	codeConflict      = "conflict"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

// ErrorDetail is the body of an API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope every error response is wrapped in.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// notFound answers 404. The caller supplies the message (e.g. "room not found")
// because the handler is the layer that knows what was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, codeNotFound, message)
}

// validationFailed answers 422 with the message of a wrapped domain.ErrValidation.
func validationFailed(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
}

// badRequest answers 400 for input rejected before reaching the service layer
// (malformed body, missing form fields, unparseable parameters).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, codeBadRequest, message)
}

// internalError logs err and answers 500 with its text.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, codeInternalError, err.Error())
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.RoomService.Update: validation error: room type is required" -> "room type is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

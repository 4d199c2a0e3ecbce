package api

import (
	"encoding/json"
	"net/http"
)

const (
	codeInvalidRequest    = "invalid_request"
	codeAttemptIDRequired = "attempt_id_required"
	codeNotFound          = "not_found"
	codeMethodNotAllowed  = "method_not_allowed"
	codeNotSupported      = "not_supported"
	codeBackendError      = "backend_error"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorResponse{Error: code, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: codeBackendError})
	}
	writeBytes(w, status, data)
}

func writeBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

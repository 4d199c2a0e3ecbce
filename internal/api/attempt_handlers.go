package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"quiz/internal/attempt"
	"quiz/pkg/quiz"
)

func (h *handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, http.StatusInternalServerError, codeBackendError, "")
		return
	}
	var req quiz.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be a JSON object")
		return
	}
	if err := h.service.Save(r.Context(), req); err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz.SaveResponse{Status: quiz.StatusSaved})
}

func (h *handler) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, http.StatusInternalServerError, codeBackendError, "")
		return
	}
	attemptID := mux.Vars(r)["attemptId"]
	state, err := h.service.Attempt(r.Context(), attemptID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, http.StatusInternalServerError, codeBackendError, "")
		return
	}
	var req quiz.FinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be a JSON object")
		return
	}
	results, err := h.service.Finish(r.Context(), req.AttemptID)
	if errors.Is(err, attempt.ErrMissingAttemptID) {
		writeError(w, http.StatusBadRequest, codeAttemptIDRequired, err.Error())
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz.FinishResponse{Status: quiz.StatusFinished, Results: results})
}

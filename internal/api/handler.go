package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"quiz/internal/attempt"
)

// Config wires dependencies for the HTTP handler.
type Config struct {
	Service        *attempt.Service
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewHandler builds an HTTP handler for the quiz API.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{
		service: cfg.Service,
		logger:  logger,
	}
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	router.Use(logRequests(logger))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/quiz", h.handleQuestions).Methods(http.MethodGet)
	api.HandleFunc("/attempt/save", h.handleSave).Methods(http.MethodPost)
	api.HandleFunc("/attempt/finish", h.handleFinish).Methods(http.MethodPost)
	api.HandleFunc("/attempt/{attemptId}", h.handleGetAttempt).Methods(http.MethodGet)
	api.HandleFunc("/admin/stats", h.handleStats).Methods(http.MethodGet)

	return withCORS(cfg.AllowedOrigins, router)
}

type handler struct {
	service *attempt.Service
	logger  *slog.Logger
}

func (h *handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, http.StatusInternalServerError, codeBackendError, "")
		return
	}
	questions, err := h.service.Questions(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, http.StatusInternalServerError, codeBackendError, "")
		return
	}
	stats, ok, err := h.service.Stats(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotImplemented, codeNotSupported, "backend does not report stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, codeBackendError, "")
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, "")
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "")
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/massive-bench/pkg/kit"
)

// NewRouter returns an http.Handler with all classification routes.
func NewRouter(svc *Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		eps: newEndpoints(svc, logger),
		svc: svc,
	}

	mux.HandleFunc("GET /v1/classify/batch", methodNotAllowed)
	mux.HandleFunc("POST /v1/classify/batch", h.handleClassifyBatch)
	mux.HandleFunc("GET /v1/classify/{locale}", h.handleClassify)
	mux.HandleFunc("GET /v1/locales", h.handleListLocales)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestID(mux))
}

type handler struct {
	eps endpoints
	svc *Service
}

// --- classify one utterance ---

func (h *handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	if text == "" {
		writeError(w, http.StatusBadRequest, "missing q")
		return
	}

	resp, err := h.eps.classify(r.Context(), &classifyReq{Locale: r.PathValue("locale"), Text: text})
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- classify batch ---

type httpBatchRequest struct {
	Locale     string   `json:"locale"`
	Utterances []string `json:"utterances"`
}

func (h *handler) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256*1024)
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Locale == "" {
		writeError(w, http.StatusBadRequest, "missing locale")
		return
	}

	resp, err := h.eps.classifyBatch(r.Context(), &classifyBatchReq{Locale: req.Locale, Texts: req.Utterances})
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list locales ---

func (h *handler) handleListLocales(w http.ResponseWriter, r *http.Request) {
	resp, err := h.eps.listLocales(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status string `json:"status"`
	Models int    `json:"models"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Models: h.svc.Models().ModelCount(),
	})
}

// --- helpers ---

func errorStatus(err error) int {
	if errors.Is(err, ErrUnknownLocale) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// requestID propagates X-Request-ID into the context, generating one if absent.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = kit.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := kit.WithTransport(kit.WithRequestID(r.Context(), id), "http")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

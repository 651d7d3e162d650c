package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"homeprice/service"
)

const maxRecentLimit = 500

// Handlers serves the estimate API on top of a quote service.
type Handlers struct {
	svc         *service.Service
	logger      *zap.Logger
	upgrader    websocket.Upgrader
	recentLimit int
}

func NewHandlers(svc *service.Service, logger *zap.Logger, allowedOrigins []string, recentLimit int) *Handlers {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Handlers{
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || originAllowed(allowedOrigins, origin)
			},
		},
		recentLimit: recentLimit,
	}
}

func (h *Handlers) Register(mux *Routes) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/locations", h.handleLocations)
	mux.HandleFunc("GET /api/estimate", h.handleEstimateQuery)
	mux.HandleFunc("POST /api/estimate", h.handleEstimateJSON)
	mux.HandleFunc("GET /api/estimates/recent", h.handleRecent)
	mux.HandleFunc("GET /api/ws/estimate", h.handleEstimateSocket)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) handleLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locations": h.svc.Locations(),
	})
}

func (h *Handlers) handleEstimateJSON(w http.ResponseWriter, r *http.Request) {
	req := service.DefaultRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	h.estimate(w, r, req)
}

func (h *Handlers) handleEstimateQuery(w http.ResponseWriter, r *http.Request) {
	req, err := parseEstimateQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.estimate(w, r, req)
}

func (h *Handlers) estimate(w http.ResponseWriter, r *http.Request, req service.Request) {
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := h.svc.Estimate(r.Context(), req)
	if err != nil {
		h.logger.Error("estimate failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "estimate failed")
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handlers) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := h.recentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(l, maxRecentLimit)
	}

	quotes, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("load recent estimates", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load recent estimates")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"estimates": quotes,
	})
}

// parseEstimateQuery reads an estimate request from query parameters,
// falling back to the form defaults for omitted fields.
func parseEstimateQuery(r *http.Request) (service.Request, error) {
	q := r.URL.Query()
	req := service.DefaultRequest()
	req.Location = q.Get("location")

	if v := q.Get("total_sqft"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("total_sqft must be a number")
		}
		req.TotalSqft = f
	}
	if v := q.Get("bath"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("bath must be an integer")
		}
		req.Bath = n
	}
	if v := q.Get("bhk"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("bhk must be an integer")
		}
		req.BHK = n
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

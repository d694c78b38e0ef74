package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/internal/engine"
	"github.com/ycwu/twquant/pkg/logger"
)

// StockHandler handles per-symbol diagnostic API endpoints
// ⭐ SSOT: 個股 API 處理只在這個結構
type StockHandler struct {
	engine *engine.Engine
	logger *logger.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(eng *engine.Engine, log *logger.Logger) *StockHandler {
	return &StockHandler{
		engine: eng,
		logger: log,
	}
}

// GetDiagnosis returns the full diagnostic result for a stock
// GET /api/stocks/{symbol}/diagnosis
func (h *StockHandler) GetDiagnosis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	if symbol == "" {
		respondError(w, http.StatusBadRequest, "stock symbol is required")
		return
	}

	result, err := h.engine.Diagnose(ctx, symbol)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrNotFound):
			respondError(w, http.StatusNotFound, "symbol not listed on TWSE or TPEx: "+symbol)
		case errors.Is(err, contracts.ErrInsufficientHistory):
			respondError(w, http.StatusUnprocessableEntity, "not enough price history to diagnose "+symbol)
		case errors.Is(err, contracts.ErrProvider):
			h.logger.WithError(err).Error("Price provider failure")
			respondError(w, http.StatusBadGateway, "upstream price provider failed")
		default:
			h.logger.WithError(err).Error("Diagnosis failed")
			respondError(w, http.StatusInternalServerError, "Failed to diagnose symbol")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// NewsResponse wraps the news list for API response
type NewsResponse struct {
	Symbol string               `json:"symbol"`
	Items  []contracts.NewsItem `json:"items"`
}

// GetNews returns recent news headlines for a stock
// GET /api/stocks/{symbol}/news?limit=5
func (h *StockHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	if symbol == "" {
		respondError(w, http.StatusBadRequest, "stock symbol is required")
		return
	}

	limit := engine.DefaultNewsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.engine.News(ctx, symbol, limit)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrNotFound):
			respondError(w, http.StatusNotFound, "symbol not listed on TWSE or TPEx: "+symbol)
		case errors.Is(err, contracts.ErrUnavailable):
			// News is best-effort: degrade to an empty list instead of failing
			h.logger.WithError(err).Warn("News source unavailable")
			respondJSON(w, http.StatusOK, NewsResponse{Symbol: symbol, Items: []contracts.NewsItem{}})
		default:
			h.logger.WithError(err).Error("News fetch failed")
			respondError(w, http.StatusInternalServerError, "Failed to fetch news")
		}
		return
	}
	if items == nil {
		items = []contracts.NewsItem{}
	}

	respondJSON(w, http.StatusOK, NewsResponse{Symbol: symbol, Items: items})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

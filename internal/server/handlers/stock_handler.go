package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/auth"
	"github.com/dudhwala/backend/internal/service/ledger"
)

// StockHandler serves the owner's stock read path.
type StockHandler struct {
	query  *ledger.Query
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(query *ledger.Query, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{query: query, logger: logger}
}

// Today handles GET /api/owner/stock/today. Days without ledger rows answer
// with zero-valued cow and buffalo snapshots.
func (h *StockHandler) Today(c *gin.Context) {
	stock, err := h.query.TodayStock(c.Request.Context(), auth.UserID(c), time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Today stock fetched successfully", stock)
}

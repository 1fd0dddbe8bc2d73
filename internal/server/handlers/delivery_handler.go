package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/auth"
	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/service/delivery"
)

// DeliveryHandler adapts HTTP requests to the delivery recorder.
type DeliveryHandler struct {
	svc    *delivery.Service
	logger *zap.Logger
}

// NewDeliveryHandler constructs the HTTP handler adapter.
func NewDeliveryHandler(svc *delivery.Service, logger *zap.Logger) *DeliveryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryHandler{svc: svc, logger: logger}
}

type recordDeliveryRequest struct {
	CustomerID string          `json:"customerId" binding:"required"`
	MilkQty    float64         `json:"milkQty" binding:"required"`
	MilkType   models.MilkType `json:"milkType" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
}

// Record handles POST /api/seller/deliveries. A first submission for the day
// answers 201; a resubmission updates the existing record and answers 200.
func (h *DeliveryHandler) Record(c *gin.Context) {
	var req recordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid delivery payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Required fields missing"})
		return
	}

	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid customerId"})
		return
	}

	recorded, created, err := h.svc.Record(c.Request.Context(), auth.UserID(c), delivery.Input{
		CustomerID: customerID,
		MilkType:   req.MilkType,
		MilkQty:    req.MilkQty,
		Date:       req.Date,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if created {
		respond(c, http.StatusCreated, "Milk delivery marked successfully", recorded)
		return
	}
	respond(c, http.StatusOK, "Milk delivery updated successfully", recorded)
}

// List handles GET /api/seller/deliveries. Optional query param: date.
func (h *DeliveryHandler) List(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date"})
			return
		}
		date = parsed
	}

	deliveries, err := h.svc.ListForDate(c.Request.Context(), auth.UserID(c), date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Milk deliveries fetched", deliveries)
}

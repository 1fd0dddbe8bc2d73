package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/auth"
	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/service/procurement"
)

// ProcurementHandler adapts HTTP requests to the procurement recorder.
type ProcurementHandler struct {
	svc    *procurement.Service
	logger *zap.Logger
}

// NewProcurementHandler constructs the HTTP handler adapter.
func NewProcurementHandler(svc *procurement.Service, logger *zap.Logger) *ProcurementHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcurementHandler{svc: svc, logger: logger}
}

type createProcurementRequest struct {
	VendorID          string            `json:"vendorId" binding:"required"`
	MilkTypesSupplied []models.MilkType `json:"milkTypesSupplied"`
	Quantity          float64           `json:"quantity" binding:"required"`
	RatePerLiter      float64           `json:"ratePerLiter" binding:"required"`
	Date              time.Time         `json:"date" binding:"required"`
	Notes             string            `json:"notes"`
}

type updateProcurementRequest struct {
	MilkTypesSupplied []models.MilkType `json:"milkTypesSupplied"`
	Quantity          *float64          `json:"quantity"`
	RatePerLiter      *float64          `json:"ratePerLiter"`
	Notes             *string           `json:"notes"`
}

// Create handles POST /api/owner/procurements.
func (h *ProcurementHandler) Create(c *gin.Context) {
	var req createProcurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid procurement payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Required fields are missing"})
		return
	}

	vendorID, err := primitive.ObjectIDFromHex(req.VendorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid vendorId"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), auth.UserID(c), procurement.CreateInput{
		VendorID:          vendorID,
		MilkTypesSupplied: req.MilkTypesSupplied,
		Quantity:          req.Quantity,
		RatePerLiter:      req.RatePerLiter,
		Date:              req.Date,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Milk procurement added successfully", created)
}

// Update handles PUT /api/owner/procurements/:id.
func (h *ProcurementHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid procurement id"})
		return
	}

	var req updateProcurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid procurement payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), auth.UserID(c), id, procurement.UpdateInput{
		MilkTypesSupplied: req.MilkTypesSupplied,
		Quantity:          req.Quantity,
		RatePerLiter:      req.RatePerLiter,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Milk procurement updated successfully", updated)
}

// Delete handles DELETE /api/owner/procurements/:id.
func (h *ProcurementHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid procurement id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Milk procurement deleted successfully", nil)
}

// List handles GET /api/owner/procurements.
func (h *ProcurementHandler) List(c *gin.Context) {
	procurements, err := h.svc.ListByStore(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Milk procurements fetched", procurements)
}

// ListByVendor handles GET /api/owner/procurements/vendor/:vendorId.
func (h *ProcurementHandler) ListByVendor(c *gin.Context) {
	vendorID, err := primitive.ObjectIDFromHex(c.Param("vendorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid vendorId"})
		return
	}

	procurements, err := h.svc.ListByVendor(c.Request.Context(), auth.UserID(c), vendorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Vendor milk procurements fetched", procurements)
}

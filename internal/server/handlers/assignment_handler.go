package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/auth"
	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/service/assignment"
)

// AssignmentHandler adapts HTTP requests to the assignment recorder.
type AssignmentHandler struct {
	svc    *assignment.Service
	logger *zap.Logger
}

// NewAssignmentHandler constructs the HTTP handler adapter.
func NewAssignmentHandler(svc *assignment.Service, logger *zap.Logger) *AssignmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentHandler{svc: svc, logger: logger}
}

type createAssignmentRequest struct {
	SellerID string          `json:"sellerId" binding:"required"`
	MilkType models.MilkType `json:"milkType" binding:"required"`
	Quantity float64         `json:"quantity" binding:"required"`
	Date     time.Time       `json:"date" binding:"required"`
}

type updateAssignmentRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
}

// Create handles POST /api/owner/assignments.
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assignment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Required fields are missing"})
		return
	}

	sellerID, err := primitive.ObjectIDFromHex(req.SellerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid sellerId"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), auth.UserID(c), assignment.CreateInput{
		SellerID: sellerID,
		MilkType: req.MilkType,
		Quantity: req.Quantity,
		Date:     req.Date,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Milk assigned successfully", created)
}

// Update handles PUT /api/owner/assignments/:id.
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid assignment id"})
		return
	}

	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assignment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Quantity must be > 0"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), auth.UserID(c), id, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Milk assign updated successfully", updated)
}

// Delete handles DELETE /api/owner/assignments/:id.
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid assignment id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Milk assign deleted successfully", nil)
}

// List handles GET /api/owner/assignments.
func (h *AssignmentHandler) List(c *gin.Context) {
	assigns, err := h.svc.ListByStore(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Milk assignments fetched", assigns)
}

// ListBySeller handles GET /api/owner/assignments/seller/:sellerId.
func (h *AssignmentHandler) ListBySeller(c *gin.Context) {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("sellerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid sellerId"})
		return
	}

	assigns, err := h.svc.ListBySeller(c.Request.Context(), auth.UserID(c), sellerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Seller milk assignments fetched", assigns)
}

// SellerSummary handles GET /api/owner/assignments/seller/:sellerId/summary.
// Optional query params: date (RFC 3339 or 2006-01-02), milkType.
func (h *AssignmentHandler) SellerSummary(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date"})
			return
		}
		date = parsed
	}

	milkType := models.MilkType(c.Query("milkType"))

	summary, err := h.svc.TodaySummary(c.Request.Context(), auth.UserID(c), date, milkType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Seller today summary fetched", summary)
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/auth"
	"github.com/dudhwala/backend/internal/server/handlers"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Procurement *handlers.ProcurementHandler
	Assignment  *handlers.AssignmentHandler
	Delivery    *handlers.DeliveryHandler
	Stock       *handlers.StockHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, jwtSecret string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(auth.Middleware(jwtSecret))

	owner := api.Group("/owner")
	owner.Use(auth.RequireRole(auth.RoleOwner))

	owner.POST("/procurements", h.Procurement.Create)
	owner.GET("/procurements", h.Procurement.List)
	owner.PUT("/procurements/:id", h.Procurement.Update)
	owner.DELETE("/procurements/:id", h.Procurement.Delete)
	owner.GET("/procurements/vendor/:vendorId", h.Procurement.ListByVendor)

	owner.POST("/assignments", h.Assignment.Create)
	owner.GET("/assignments", h.Assignment.List)
	owner.PUT("/assignments/:id", h.Assignment.Update)
	owner.DELETE("/assignments/:id", h.Assignment.Delete)
	owner.GET("/assignments/seller/:sellerId", h.Assignment.ListBySeller)
	owner.GET("/assignments/seller/:sellerId/summary", h.Assignment.SellerSummary)

	owner.GET("/stock/today", h.Stock.Today)

	seller := api.Group("/seller")
	seller.Use(auth.RequireRole(auth.RoleSeller))

	seller.POST("/deliveries", h.Delivery.Record)
	seller.GET("/deliveries", h.Delivery.List)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

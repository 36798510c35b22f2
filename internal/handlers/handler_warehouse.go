package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
)

// warehouseHandler handles HTTP requests for the central stock pool.
type warehouseHandler struct {
	warehouseService portssvc.WarehouseSvcFacade
}

// newWarehouseHandler creates a new warehouseHandler.
func newWarehouseHandler(ws portssvc.WarehouseSvcFacade) *warehouseHandler {
	return &warehouseHandler{
		warehouseService: ws,
	}
}

// registerWarehouseRoutes registers routes related to warehouse stock.
func registerWarehouseRoutes(rg *gin.RouterGroup, warehouseService portssvc.WarehouseSvcFacade) {
	h := newWarehouseHandler(warehouseService)

	warehouse := rg.Group("/warehouse")
	{
		warehouse.GET("/stock", h.getStock)
		warehouse.PUT("/stock", middleware.RequireRole(string(domain.RoleAdmin)), h.setStock)
	}
}

// getStock godoc
// @Summary Get warehouse stock
// @Description Retrieves the warehouse ledger with every catalog denomination present, defaulting to zero
// @Tags warehouse
// @Produce json
// @Success 200 {object} dto.WarehouseStockResponse
// @Failure 500 {object} map[string]string "Failed to read warehouse stock"
// @Security BearerAuth
// @Router /warehouse/stock [get]
func (h *warehouseHandler) getStock(c *gin.Context) {
	stock, err := h.warehouseService.GetStock(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WarehouseStockResponse{Stock: stock})
}

// setStock godoc
// @Summary Set warehouse stock quantities
// @Description Upserts absolute quantities for the given denominations and returns the full resulting ledger (admin only)
// @Tags warehouse
// @Accept json
// @Produce json
// @Param stock body domain.DenominationLedger true "Denomination to quantity map"
// @Success 200 {object} dto.WarehouseStockResponse
// @Failure 400 {object} map[string]string "Non-object payload or invalid denomination"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /warehouse/stock [put]
func (h *warehouseHandler) setStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var quantities domain.DenominationLedger
	if err := c.ShouldBindJSON(&quantities); err != nil {
		logger.Warn("Failed to bind JSON for SetStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stock, err := h.warehouseService.SetStock(c.Request.Context(), quantities, updaterNik)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WarehouseStockResponse{Stock: stock})
}

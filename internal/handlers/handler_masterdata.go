package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
)

// masterdataHandler serves the read-only vehicle and store catalogs used for
// assignment dispatch and route display.
type masterdataHandler struct {
	vehicleService portssvc.VehicleSvcFacade
	storeService   portssvc.StoreSvcFacade
}

// registerMasterdataRoutes registers the vehicle and store routes.
func registerMasterdataRoutes(rg *gin.RouterGroup, vehicleService portssvc.VehicleSvcFacade, storeService portssvc.StoreSvcFacade) {
	h := &masterdataHandler{
		vehicleService: vehicleService,
		storeService:   storeService,
	}

	rg.GET("/vehicles", h.listVehicles)
	rg.GET("/vehicles/:id", h.getVehicle)
	rg.GET("/stores", h.listStores)
	rg.GET("/stores/:code", h.getStore)
}

// listVehicles godoc
// @Summary List vehicles
// @Tags masterdata
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.VehicleResponse
// @Security BearerAuth
// @Router /vehicles [get]
func (h *masterdataHandler) listVehicles(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]dto.VehicleResponse, len(vehicles))
	for i := range vehicles {
		responses[i] = dto.ToVehicleResponse(&vehicles[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getVehicle godoc
// @Summary Get a vehicle by ID
// @Tags masterdata
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *masterdataHandler) getVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// listStores godoc
// @Summary List stores
// @Tags masterdata
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.StoreResponse
// @Security BearerAuth
// @Router /stores [get]
func (h *masterdataHandler) listStores(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	stores, err := h.storeService.ListStores(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]dto.StoreResponse, len(stores))
	for i := range stores {
		responses[i] = dto.ToStoreResponse(&stores[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getStore godoc
// @Summary Get a store by code
// @Tags masterdata
// @Produce json
// @Param code path string true "Store code"
// @Success 200 {object} dto.StoreResponse
// @Failure 404 {object} map[string]string "Store not found"
// @Security BearerAuth
// @Router /stores/{code} [get]
func (h *masterdataHandler) getStore(c *gin.Context) {
	store, err := h.storeService.GetStoreByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

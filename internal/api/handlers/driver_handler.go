package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridesim/internal/services"
)

type DriverHandler struct {
	dispatchService *services.DispatchService
}

func NewDriverHandler(dispatchService *services.DispatchService) *DriverHandler {
	return &DriverHandler{dispatchService: dispatchService}
}

type AnnounceDriverRequest struct {
	ID       string          `json:"id"`
	Location LocationRequest `json:"location" binding:"required"`
	Speed    int             `json:"speed"`
}

// AnnounceAvailable handles POST /drivers/available
func (h *DriverHandler) AnnounceAvailable(c *gin.Context) {
	var req AnnounceDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.dispatchService.AnnounceDriver(
		c.Request.Context(),
		req.ID,
		req.Location.toLocation(),
		req.Speed,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// GetDriver handles GET /drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.dispatchService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
		return
	}
	c.JSON(http.StatusOK, driver)
}

// ListDrivers handles GET /drivers
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.dispatchService.ListDrivers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

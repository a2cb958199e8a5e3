package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridesim/internal/domain/entities"
	"ridesim/internal/services"
)

type RiderHandler struct {
	dispatchService *services.DispatchService
}

func NewRiderHandler(dispatchService *services.DispatchService) *RiderHandler {
	return &RiderHandler{dispatchService: dispatchService}
}

type LocationRequest struct {
	Row    *int `json:"row" binding:"required"`
	Column *int `json:"column" binding:"required"`
}

func (l LocationRequest) toLocation() entities.Location {
	return entities.NewLocation(*l.Row, *l.Column)
}

type RequestRideRequest struct {
	ID          string          `json:"id"`
	Patience    *int            `json:"patience" binding:"required"`
	Origin      LocationRequest `json:"origin" binding:"required"`
	Destination LocationRequest `json:"destination" binding:"required"`
}

// RequestRide handles POST /riders/request
func (h *RiderHandler) RequestRide(c *gin.Context) {
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.dispatchService.RequestRide(
		c.Request.Context(),
		req.ID,
		*req.Patience,
		req.Origin.toLocation(),
		req.Destination.toLocation(),
	)
	if err != nil {
		switch err {
		case services.ErrRiderExists:
			c.JSON(http.StatusConflict, gin.H{"error": "rider already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// CancelRide handles POST /riders/:id/cancel
func (h *RiderHandler) CancelRide(c *gin.Context) {
	rider, err := h.dispatchService.CancelRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rider not found"})
		return
	}
	c.JSON(http.StatusOK, rider)
}

// GetRider handles GET /riders/:id
func (h *RiderHandler) GetRider(c *gin.Context) {
	rider, err := h.dispatchService.GetRider(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rider not found"})
		return
	}
	c.JSON(http.StatusOK, rider)
}

// ListRiders handles GET /riders
func (h *RiderHandler) ListRiders(c *gin.Context) {
	riders, err := h.dispatchService.ListRiders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"riders": riders})
}

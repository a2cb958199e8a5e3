package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridesim/internal/services"
)

type SimulationHandler struct {
	simulationService *services.SimulationService
}

func NewSimulationHandler(simulationService *services.SimulationService) *SimulationHandler {
	return &SimulationHandler{simulationService: simulationService}
}

type RunScenarioRequest struct {
	// Events is the scenario in event-file form, one event per line.
	Events string `json:"events" binding:"required"`
}

// RunScenario handles POST /simulation/run
func (h *SimulationHandler) RunScenario(c *gin.Context) {
	var req RunScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.simulationService.RunScenario(c.Request.Context(), req.Events)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidScenario), errors.Is(err, services.ErrEmptyScenario):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, run)
}

// GetRun handles GET /simulation/runs/:id
func (h *SimulationHandler) GetRun(c *gin.Context) {
	run, err := h.simulationService.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRuns handles GET /simulation/runs
func (h *SimulationHandler) ListRuns(c *gin.Context) {
	runs, err := h.simulationService.ListRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

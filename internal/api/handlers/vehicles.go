package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/langchou/mallpark/internal/models"
)

// VehicleEntry 车辆入场
// POST /vehicles/entry
func (h *Handler) VehicleEntry(c *gin.Context) {
	var req models.VehicleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.VehicleType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid vehicle type '%s'.", req.VehicleType)})
		return
	}
	if !req.BillingType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid billing type '%s'.", req.BillingType)})
		return
	}

	resp, err := h.parking.VehicleEntry(c.Request.Context(), req)
	if err != nil {
		h.abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// VehicleExit 车辆离场
// PUT /vehicles/exit/:session_id
func (h *Handler) VehicleExit(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	resp, err := h.parking.VehicleExit(c.Request.Context(), sessionID)
	if err != nil {
		h.abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

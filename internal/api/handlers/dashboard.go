package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/mallpark/internal/models"
	"github.com/langchou/mallpark/internal/repository"
)

// DashboardSummary 车位状态统计
// GET /dashboard/summary
func (h *Handler) DashboardSummary(c *gin.Context) {
	summary, err := h.parking.Summary(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DashboardSlots 车位列表
// GET /dashboard/slots?slot_type=&status=
func (h *Handler) DashboardSlots(c *gin.Context) {
	var filter repository.SlotFilter

	if v := c.Query("slot_type"); v != "" {
		slotType := models.SlotType(v)
		if !slotType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid slot type '%s'.", v)})
			return
		}
		filter.SlotType = &slotType
	}
	if v := c.Query("status"); v != "" {
		status := models.SlotStatus(v)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid slot status '%s'.", v)})
			return
		}
		filter.Status = &status
	}

	slots, err := h.parking.ListSlots(c.Request.Context(), filter)
	if err != nil {
		h.abortError(c, err)
		return
	}
	if slots == nil {
		slots = []models.ParkingSlot{}
	}

	c.JSON(http.StatusOK, slots)
}

// DashboardSessions 会话列表
// GET /dashboard/sessions?status=&number_plate=
func (h *Handler) DashboardSessions(c *gin.Context) {
	filter := repository.SessionFilter{NumberPlate: c.Query("number_plate")}

	if v := c.Query("status"); v != "" {
		status := models.SessionStatus(v)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid session status '%s'.", v)})
			return
		}
		filter.Status = &status
	}

	sessions, err := h.parking.ListSessions(c.Request.Context(), filter)
	if err != nil {
		h.abortError(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.ParkingSession{}
	}

	c.JSON(http.StatusOK, sessions)
}

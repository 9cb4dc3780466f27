package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/langchou/mallpark/internal/models"
)

// CreateSlot 注册车位
// POST /slots
func (h *Handler) CreateSlot(c *gin.Context) {
	var req models.SlotCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.SlotType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid slot type '%s'.", req.SlotType)})
		return
	}

	slot, err := h.parking.CreateSlot(c.Request.Context(), req)
	if err != nil {
		h.abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// UpdateSlotStatus 人工更新车位状态
// PUT /slots/:slot_id/status
func (h *Handler) UpdateSlotStatus(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("slot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	var req models.SlotStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid slot status '%s'.", req.Status)})
		return
	}

	slot, err := h.parking.UpdateSlotStatus(c.Request.Context(), slotID, req.Status)
	if err != nil {
		h.abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

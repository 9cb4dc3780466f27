package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/langchou/mallpark/internal/repository"
	"github.com/langchou/mallpark/internal/service"
	"github.com/langchou/mallpark/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger   *zap.Logger
	parking  *service.ParkingService
	wsHub    *ws.Hub
	upgrader websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(logger *zap.Logger, parking *service.ParkingService, wsHub *ws.Hub) *Handler {
	return &Handler{
		logger:  logger,
		parking: parking,
		wsHub:   wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// 车辆出入场
	r.POST("/vehicles/entry", h.VehicleEntry)
	r.PUT("/vehicles/exit/:session_id", h.VehicleExit)

	// 车位管理
	r.POST("/slots", h.CreateSlot)
	r.PUT("/slots/:slot_id/status", h.UpdateSlotStatus)

	// 看板
	r.GET("/dashboard/summary", h.DashboardSummary)
	r.GET("/dashboard/slots", h.DashboardSlots)
	r.GET("/dashboard/sessions", h.DashboardSessions)

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// abortError 将业务错误映射为 HTTP 响应
func (h *Handler) abortError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	if kind == "" {
		h.logger.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(statusOf(kind), gin.H{"error": err.Error(), "code": kind})
}

func statusOf(kind service.ErrorKind) int {
	switch kind {
	case service.KindDuplicateActiveSession,
		service.KindSlotInUse,
		service.KindDuplicateSlotNumber:
		return http.StatusConflict
	case service.KindNoSlotAvailable,
		service.KindSessionNotFound,
		service.KindSlotNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// HandleWebSocket WebSocket 处理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	})
}

// InitDataProvider 构造 WebSocket 初始数据回调
func (h *Handler) InitDataProvider() func() *ws.InitData {
	return func() *ws.InitData {
		ctx := context.Background()
		summary, err := h.parking.Summary(ctx)
		if err != nil {
			h.logger.Error("Failed to build init summary", zap.Error(err))
			return nil
		}
		slots, err := h.parking.ListSlots(ctx, repository.SlotFilter{})
		if err != nil {
			h.logger.Error("Failed to build init slots", zap.Error(err))
			return nil
		}
		return &ws.InitData{Summary: summary, Slots: slots}
	}
}

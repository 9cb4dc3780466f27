package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/langchou/mallpark/internal/allocation"
	"github.com/langchou/mallpark/internal/billing"
	"github.com/langchou/mallpark/internal/models"
	"github.com/langchou/mallpark/internal/repository"
	"github.com/langchou/mallpark/internal/state"
)

// 事件类型，通过 WebSocket 广播给看板
const (
	EventSlotUpdate    = "slot_update"
	EventSessionUpdate = "session_update"
)

// 自动分配时抢占失败的重选次数上限
const maxClaimAttempts = 3

// Broadcaster 看板事件广播
type Broadcaster interface {
	BroadcastEvent(event string, data any)
}

// ParkingService 停车业务服务，负责入场、离场和车位管理的编排
type ParkingService struct {
	logger      *zap.Logger
	store       repository.Store
	engine      *allocation.Engine
	calc        *billing.Calculator
	broadcaster Broadcaster
	now         func() time.Time
}

// NewParkingService 创建停车服务
func NewParkingService(logger *zap.Logger, store repository.Store, calc *billing.Calculator) *ParkingService {
	return &ParkingService{
		logger: logger,
		store:  store,
		engine: allocation.NewEngine(),
		calc:   calc,
		now:    time.Now,
	}
}

// SetBroadcaster 设置看板事件广播器
func (s *ParkingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// VehicleEntry 车辆入场：创建会话并占用车位，整体在一个事务内完成
func (s *ParkingService) VehicleEntry(ctx context.Context, req models.VehicleEntryRequest) (*models.VehicleEntryResponse, error) {
	var resp *models.VehicleEntryResponse

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		// 同一车牌最多一个活跃会话
		active, err := tx.Sessions().ActiveByPlate(ctx, req.NumberPlate)
		if err != nil {
			return err
		}
		if active != nil {
			return newError(KindDuplicateActiveSession,
				"Vehicle with number plate '%s' already has an active session (session ID: %s).",
				req.NumberPlate, active.ID)
		}

		// 首次入场创建车辆记录；再次入场沿用已登记的车辆类型
		vehicle, err := tx.Vehicles().FindByPlate(ctx, req.NumberPlate)
		if err != nil {
			return err
		}
		if vehicle == nil {
			vehicle = &models.Vehicle{NumberPlate: req.NumberPlate, VehicleType: req.VehicleType}
			if err := tx.Vehicles().Create(ctx, vehicle); err != nil {
				return err
			}
		}

		slot, err := s.claimSlot(ctx, tx, vehicle.VehicleType, req.SlotID)
		if err != nil {
			return err
		}

		session := &models.ParkingSession{
			ID:                 uuid.New(),
			VehicleNumberPlate: req.NumberPlate,
			SlotID:             slot.ID,
			EntryTime:          s.now(),
			Status:             models.SessionActive,
			BillingType:        req.BillingType,
		}
		// 日票在入场时定价，离场不再重新计算
		if req.BillingType == models.BillingDayPass {
			rate := s.calc.Rates().DayPass
			session.BillingAmount = &rate
		}

		// 并发入场时竞争失败的一方会撞上活跃会话唯一索引
		if err := tx.Sessions().Create(ctx, session); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return newError(KindDuplicateActiveSession,
					"Vehicle with number plate '%s' already has an active session.", req.NumberPlate)
			}
			return err
		}

		resp = &models.VehicleEntryResponse{
			Message:      fmt.Sprintf("Vehicle '%s' entered. Assigned to slot %s.", req.NumberPlate, slot.SlotNumber),
			Session:      session,
			AssignedSlot: slot,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vehicle entered",
		zap.String("number_plate", req.NumberPlate),
		zap.String("slot_number", resp.AssignedSlot.SlotNumber),
		zap.String("session_id", resp.Session.ID.String()),
	)
	s.publish(EventSlotUpdate, resp.AssignedSlot)
	s.publish(EventSessionUpdate, resp.Session)
	return resp, nil
}

// claimSlot 选择并原子占用车位；自动分配在抢占失败时重新选择
func (s *ParkingService) claimSlot(ctx context.Context, tx repository.Store, vehicleType models.VehicleType, manualSlotID *int64) (*models.ParkingSlot, error) {
	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		slot, err := s.engine.Select(ctx, tx.Slots(), vehicleType, manualSlotID)
		if err != nil {
			return nil, s.allocationError(err, vehicleType, manualSlotID)
		}

		machine := state.NewSlotMachine(slot.Status)
		if err := machine.Occupy(); err != nil {
			return nil, err
		}

		claimed, err := tx.Slots().Claim(ctx, slot.ID)
		if err != nil {
			return nil, err
		}
		if claimed {
			slot.Status = machine.Current()
			return slot, nil
		}

		// 并发请求先占走了这个车位
		if manualSlotID != nil {
			return nil, newError(KindSlotUnavailable,
				"Manual slot ID %d is not available or does not exist.", *manualSlotID)
		}
		s.logger.Debug("Slot claim lost race, reselecting",
			zap.Int64("slot_id", slot.ID), zap.Int("attempt", attempt+1))
	}
	return nil, newError(KindNoSlotAvailable,
		"No available slot found for vehicle type %s.", vehicleType)
}

func (s *ParkingService) allocationError(err error, vehicleType models.VehicleType, manualSlotID *int64) error {
	switch {
	case errors.Is(err, allocation.ErrSlotUnavailable):
		return newError(KindSlotUnavailable,
			"Manual slot ID %d is not available or does not exist.", *manualSlotID)
	case errors.Is(err, allocation.ErrSlotIncompatible):
		return newError(KindSlotIncompatible,
			"Manual slot ID %d is not compatible with vehicle type %s.", *manualSlotID, vehicleType)
	case errors.Is(err, allocation.ErrNoSlotAvailable):
		return newError(KindNoSlotAvailable,
			"No available slot found for vehicle type %s.", vehicleType)
	}
	return err
}

// VehicleExit 车辆离场：结算费用、完成会话并释放车位
func (s *ParkingService) VehicleExit(ctx context.Context, sessionID uuid.UUID) (*models.VehicleExitResponse, error) {
	var resp *models.VehicleExitResponse
	var releasedSlot *models.ParkingSlot

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		session, err := tx.Sessions().ActiveByID(ctx, sessionID)
		if errors.Is(err, repository.ErrNotFound) {
			return newError(KindSessionNotFound,
				"Active parking session with ID %s not found.", sessionID)
		}
		if err != nil {
			return err
		}

		now := s.now()
		if session.BillingType == models.BillingHourly {
			amount, err := s.calc.Compute(models.BillingHourly, session.EntryTime, now)
			if errors.Is(err, billing.ErrInvalidTimeRange) {
				return newError(KindInvalidTimeRange,
					"Exit time %s is before entry time %s.", now.Format(time.RFC3339), session.EntryTime.Format(time.RFC3339))
			}
			if err != nil {
				return err
			}
			session.BillingAmount = &amount
		}
		// 日票金额已在入场时写入

		machine := state.NewSessionMachine(session.Status)
		if err := machine.Complete(); err != nil {
			return err
		}
		session.ExitTime = &now
		session.Status = machine.Current()

		if err := tx.Sessions().Complete(ctx, session); err != nil {
			return err
		}

		// 释放车位；离场期间被转入维护的车位保持维护状态
		slot, err := tx.Slots().SlotByID(ctx, session.SlotID)
		if err != nil {
			return err
		}
		if slot != nil && slot.Status == models.SlotOccupied {
			sm := state.NewSlotMachine(slot.Status)
			if err := sm.Release(); err != nil {
				return err
			}
			if err := tx.Slots().UpdateStatus(ctx, slot.ID, sm.Current()); err != nil {
				return err
			}
			slot.Status = sm.Current()
			releasedSlot = slot
		}

		resp = &models.VehicleExitResponse{
			Message: fmt.Sprintf("Vehicle '%s' exited. Total amount: %s.", session.VehicleNumberPlate, session.BillingAmount),
			Session: session,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vehicle exited",
		zap.String("number_plate", resp.Session.VehicleNumberPlate),
		zap.String("session_id", resp.Session.ID.String()),
		zap.String("billing_amount", resp.Session.BillingAmount.String()),
	)
	if releasedSlot != nil {
		s.publish(EventSlotUpdate, releasedSlot)
	}
	s.publish(EventSessionUpdate, resp.Session)
	return resp, nil
}

// CreateSlot 注册车位
func (s *ParkingService) CreateSlot(ctx context.Context, req models.SlotCreateRequest) (*models.ParkingSlot, error) {
	slot := &models.ParkingSlot{
		SlotNumber: req.SlotNumber,
		SlotType:   req.SlotType,
		Status:     models.SlotAvailable,
		HasCharger: req.HasCharger,
	}

	if err := s.store.Slots().Create(ctx, slot); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(KindDuplicateSlotNumber,
				"Parking slot with number '%s' already exists.", req.SlotNumber)
		}
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.String("slot_number", slot.SlotNumber),
		zap.String("slot_type", string(slot.SlotType)),
	)
	s.publish(EventSlotUpdate, slot)
	return slot, nil
}

// UpdateSlotStatus 人工更新车位状态
//
// 被活跃会话引用的车位不能置回 Available；进入维护不受当前
// 状态限制，被占用的车位也可以标记维护。
func (s *ParkingService) UpdateSlotStatus(ctx context.Context, slotID int64, target models.SlotStatus) (*models.ParkingSlot, error) {
	var updated *models.ParkingSlot

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		slot, err := tx.Slots().SlotByID(ctx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return newError(KindSlotNotFound, "Parking slot with ID %d not found.", slotID)
		}

		// 目标状态与当前一致时直接返回
		if slot.Status == target {
			updated = slot
			return nil
		}

		// 只要还有活跃会话引用该车位，就不能置回 Available，
		// 包括从 Maintenance 返回的情况
		if target == models.SlotAvailable {
			active, err := tx.Sessions().ActiveBySlot(ctx, slot.ID)
			if err != nil {
				return err
			}
			if active != nil {
				return newError(KindSlotInUse,
					"Slot %s is currently occupied by an active session (ID: %s). Cannot set to Available.",
					slot.SlotNumber, active.ID)
			}
		}

		machine := state.NewSlotMachine(slot.Status)
		if err := machine.Transition(target); err != nil {
			return err
		}

		if err := tx.Slots().UpdateStatus(ctx, slot.ID, machine.Current()); err != nil {
			return err
		}
		slot.Status = machine.Current()
		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Slot status updated",
		zap.String("slot_number", updated.SlotNumber),
		zap.String("status", string(updated.Status)),
	)
	s.publish(EventSlotUpdate, updated)
	return updated, nil
}

// Summary 按状态统计车位数量
func (s *ParkingService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	counts, err := s.store.Slots().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		AvailableSlots:   counts[models.SlotAvailable],
		OccupiedSlots:    counts[models.SlotOccupied],
		MaintenanceSlots: counts[models.SlotMaintenance],
	}
	summary.TotalSlots = summary.AvailableSlots + summary.OccupiedSlots + summary.MaintenanceSlots
	return summary, nil
}

// ListSlots 按过滤条件列出车位
func (s *ParkingService) ListSlots(ctx context.Context, filter repository.SlotFilter) ([]models.ParkingSlot, error) {
	return s.store.Slots().List(ctx, filter)
}

// ListSessions 按过滤条件列出会话
func (s *ParkingService) ListSessions(ctx context.Context, filter repository.SessionFilter) ([]models.ParkingSession, error) {
	return s.store.Sessions().List(ctx, filter)
}

// 默认车位布局，用于空库初始化
var defaultSlotLayout = []models.ParkingSlot{
	{SlotNumber: "R1", SlotType: models.SlotRegular},
	{SlotNumber: "R2", SlotType: models.SlotRegular},
	{SlotNumber: "R3", SlotType: models.SlotRegular},
	{SlotNumber: "R4", SlotType: models.SlotRegular},
	{SlotNumber: "R5", SlotType: models.SlotRegular},
	{SlotNumber: "R6", SlotType: models.SlotRegular},
	{SlotNumber: "C1", SlotType: models.SlotCompact},
	{SlotNumber: "C2", SlotType: models.SlotCompact},
	{SlotNumber: "C3", SlotType: models.SlotCompact},
	{SlotNumber: "C4", SlotType: models.SlotCompact},
	{SlotNumber: "E1", SlotType: models.SlotEV, HasCharger: true},
	{SlotNumber: "E2", SlotType: models.SlotEV, HasCharger: true},
	{SlotNumber: "E3", SlotType: models.SlotEV, HasCharger: true},
	{SlotNumber: "H1", SlotType: models.SlotHandicap},
	{SlotNumber: "H2", SlotType: models.SlotHandicap},
	{SlotNumber: "B1", SlotType: models.SlotBike},
	{SlotNumber: "B2", SlotType: models.SlotBike},
	{SlotNumber: "B3", SlotType: models.SlotBike},
	{SlotNumber: "B4", SlotType: models.SlotBike},
}

// SeedDefaultSlots 车位表为空时填充默认布局
func (s *ParkingService) SeedDefaultSlots(ctx context.Context) error {
	count, err := s.store.Slots().Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, layout := range defaultSlotLayout {
		slot := layout
		slot.Status = models.SlotAvailable
		if err := s.store.Slots().Create(ctx, &slot); err != nil {
			return fmt.Errorf("seed slot %s: %w", slot.SlotNumber, err)
		}
	}

	s.logger.Info("Seeded default slot layout", zap.Int("slots", len(defaultSlotLayout)))
	return nil
}

func (s *ParkingService) publish(event string, data any) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent(event, data)
	}
}

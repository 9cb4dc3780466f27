package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/langchou/mallpark/internal/models"
)

// 分配失败原因
var (
	ErrSlotUnavailable  = errors.New("slot does not exist or is not available")
	ErrSlotIncompatible = errors.New("slot is not compatible with vehicle type")
	ErrNoSlotAvailable  = errors.New("no available slot for vehicle type")
)

// SlotSource 分配引擎需要的车位查询能力；未命中时返回 (nil, nil)
type SlotSource interface {
	SlotByID(ctx context.Context, id int64) (*models.ParkingSlot, error)
	FirstAvailable(ctx context.Context, slotType models.SlotType, requireCharger bool) (*models.ParkingSlot, error)
}

// Engine 车位分配引擎
//
// Select 只做选择，不修改任何状态；占用车位由调用方通过存储层的
// Claim 原子操作完成，竞争失败时重新选择。
type Engine struct{}

// NewEngine 创建分配引擎
func NewEngine() *Engine {
	return &Engine{}
}

// Select 为车辆选择车位
//
// 指定 manualSlotID 时校验该车位可用且类型匹配。自动分配时按
// CompatibleSlotTypes 的优先级逐类查找；EV 仅在 EV 车位一档要求
// 充电桩，回退到普通/紧凑车位时不再附加该条件。同类车位中取 id
// 最小的一个，保证选择结果确定。
func (e *Engine) Select(ctx context.Context, src SlotSource, vehicleType models.VehicleType, manualSlotID *int64) (*models.ParkingSlot, error) {
	if manualSlotID != nil {
		return e.selectManual(ctx, src, vehicleType, *manualSlotID)
	}
	return e.selectAuto(ctx, src, vehicleType)
}

func (e *Engine) selectManual(ctx context.Context, src SlotSource, vehicleType models.VehicleType, slotID int64) (*models.ParkingSlot, error) {
	slot, err := src.SlotByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("look up slot %d: %w", slotID, err)
	}
	if slot == nil || slot.Status != models.SlotAvailable {
		return nil, ErrSlotUnavailable
	}
	if !IsCompatible(vehicleType, slot.SlotType, slot.HasCharger) {
		return nil, ErrSlotIncompatible
	}
	return slot, nil
}

func (e *Engine) selectAuto(ctx context.Context, src SlotSource, vehicleType models.VehicleType) (*models.ParkingSlot, error) {
	for _, slotType := range CompatibleSlotTypes(vehicleType) {
		requireCharger := vehicleType == models.VehicleEV && slotType == models.SlotEV

		slot, err := src.FirstAvailable(ctx, slotType, requireCharger)
		if err != nil {
			return nil, fmt.Errorf("search %s slots: %w", slotType, err)
		}
		if slot != nil {
			return slot, nil
		}
	}
	return nil, ErrNoSlotAvailable
}

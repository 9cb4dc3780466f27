package allocation

import "github.com/langchou/mallpark/internal/models"

// CompatibleSlotTypes 返回车辆类型可用的车位类型，按分配优先级排序
func CompatibleSlotTypes(vehicleType models.VehicleType) []models.SlotType {
	switch vehicleType {
	case models.VehicleCar:
		return []models.SlotType{models.SlotRegular, models.SlotCompact}
	case models.VehicleBike:
		return []models.SlotType{models.SlotBike}
	case models.VehicleEV:
		// 带充电桩的 EV 车位不可用时回退到普通车位
		return []models.SlotType{models.SlotEV, models.SlotRegular, models.SlotCompact}
	case models.VehicleHandicap:
		return []models.SlotType{models.SlotHandicap, models.SlotRegular, models.SlotCompact}
	}
	return nil
}

// IsCompatible 校验手动指定的车位是否与车辆类型匹配
//
// 对 EV 的判定与自动分配不对称：EV 车位必须带充电桩，普通/紧凑车位
// 必须不带充电桩。该行为与线上系统保持一致，调整前需与业务方确认。
func IsCompatible(vehicleType models.VehicleType, slotType models.SlotType, hasCharger bool) bool {
	switch vehicleType {
	case models.VehicleCar:
		return slotType == models.SlotRegular || slotType == models.SlotCompact
	case models.VehicleBike:
		return slotType == models.SlotBike
	case models.VehicleEV:
		if slotType == models.SlotEV {
			return hasCharger
		}
		return (slotType == models.SlotRegular || slotType == models.SlotCompact) && !hasCharger
	case models.VehicleHandicap:
		return slotType == models.SlotHandicap || slotType == models.SlotRegular || slotType == models.SlotCompact
	}
	return false
}

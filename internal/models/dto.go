package models

// VehicleEntryRequest 车辆入场请求
type VehicleEntryRequest struct {
	NumberPlate string      `json:"number_plate" binding:"required,max=20"`
	VehicleType VehicleType `json:"vehicle_type" binding:"required"`
	BillingType BillingType `json:"billing_type" binding:"required"`
	SlotID      *int64      `json:"slot_id"` // 手动指定车位，可选
}

// VehicleEntryResponse 车辆入场响应
type VehicleEntryResponse struct {
	Message      string          `json:"message"`
	Session      *ParkingSession `json:"session"`
	AssignedSlot *ParkingSlot    `json:"assigned_slot"`
}

// VehicleExitResponse 车辆离场响应
type VehicleExitResponse struct {
	Message string          `json:"message"`
	Session *ParkingSession `json:"session"`
}

// SlotCreateRequest 注册车位请求
type SlotCreateRequest struct {
	SlotNumber string   `json:"slot_number" binding:"required,max=10"`
	SlotType   SlotType `json:"slot_type" binding:"required"`
	HasCharger bool     `json:"has_charger"`
}

// SlotStatusUpdateRequest 更新车位状态请求
type SlotStatusUpdateRequest struct {
	Status SlotStatus `json:"status" binding:"required"`
}

// DashboardSummary 车位状态统计
type DashboardSummary struct {
	TotalSlots       int `json:"total_slots"`
	AvailableSlots   int `json:"available_slots"`
	OccupiedSlots    int `json:"occupied_slots"`
	MaintenanceSlots int `json:"maintenance_slots"`
}

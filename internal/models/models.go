package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleType 车辆类型
type VehicleType string

const (
	VehicleCar      VehicleType = "Car"
	VehicleBike     VehicleType = "Bike"
	VehicleEV       VehicleType = "EV"
	VehicleHandicap VehicleType = "Handicap Accessible"
)

// Valid 校验车辆类型
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleCar, VehicleBike, VehicleEV, VehicleHandicap:
		return true
	}
	return false
}

// SlotType 车位类型
type SlotType string

const (
	SlotRegular  SlotType = "Regular"
	SlotCompact  SlotType = "Compact"
	SlotEV       SlotType = "EV"
	SlotHandicap SlotType = "Handicap Accessible"
	SlotBike     SlotType = "Bike"
)

// Valid 校验车位类型
func (t SlotType) Valid() bool {
	switch t {
	case SlotRegular, SlotCompact, SlotEV, SlotHandicap, SlotBike:
		return true
	}
	return false
}

// SlotStatus 车位状态
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "Available"
	SlotOccupied    SlotStatus = "Occupied"
	SlotMaintenance SlotStatus = "Maintenance"
)

// Valid 校验车位状态
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotOccupied, SlotMaintenance:
		return true
	}
	return false
}

// SessionStatus 停车会话状态
type SessionStatus string

const (
	SessionActive    SessionStatus = "Active"
	SessionCompleted SessionStatus = "Completed"
)

// Valid 校验会话状态
func (s SessionStatus) Valid() bool {
	return s == SessionActive || s == SessionCompleted
}

// BillingType 计费类型
type BillingType string

const (
	BillingHourly  BillingType = "Hourly"
	BillingDayPass BillingType = "Day Pass"
)

// Valid 校验计费类型
func (t BillingType) Valid() bool {
	return t == BillingHourly || t == BillingDayPass
}

// Vehicle 车辆信息，首次入场时创建，之后复用
type Vehicle struct {
	ID          int64       `json:"id" db:"id"`
	NumberPlate string      `json:"number_plate" db:"number_plate"`
	VehicleType VehicleType `json:"vehicle_type" db:"vehicle_type"`
}

// ParkingSlot 停车位
type ParkingSlot struct {
	ID         int64      `json:"id" db:"id"`
	SlotNumber string     `json:"slot_number" db:"slot_number"`
	SlotType   SlotType   `json:"slot_type" db:"slot_type"`
	Status     SlotStatus `json:"status" db:"status"`
	HasCharger bool       `json:"has_charger" db:"has_charger"`
}

// ParkingSession 停车会话，覆盖一次完整的停车-离场过程
type ParkingSession struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	VehicleNumberPlate string        `json:"vehicle_number_plate" db:"vehicle_number_plate"`
	SlotID             int64         `json:"slot_id" db:"slot_id"`
	EntryTime          time.Time     `json:"entry_time" db:"entry_time"`
	ExitTime           *time.Time    `json:"exit_time" db:"exit_time"`
	Status             SessionStatus `json:"status" db:"status"`
	BillingType        BillingType   `json:"billing_type" db:"billing_type"`
	BillingAmount      *Amount       `json:"billing_amount" db:"billing_amount_cents"`
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/langchou/mallpark/internal/models"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// ErrDuplicate 违反唯一约束
var ErrDuplicate = errors.New("record already exists")

// SlotFilter 车位列表过滤条件
type SlotFilter struct {
	SlotType *models.SlotType
	Status   *models.SlotStatus
}

// SessionFilter 会话列表过滤条件
type SessionFilter struct {
	Status      *models.SessionStatus
	NumberPlate string // 车牌模糊搜索，不区分大小写
}

// VehicleStore 车辆存储
type VehicleStore interface {
	// FindByPlate 按车牌查找，未找到返回 (nil, nil)
	FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
	// Create 创建车辆并回填 ID，车牌冲突返回 ErrDuplicate
	Create(ctx context.Context, vehicle *models.Vehicle) error
}

// SlotStore 车位存储
type SlotStore interface {
	// Create 注册车位并回填 ID，编号冲突返回 ErrDuplicate
	Create(ctx context.Context, slot *models.ParkingSlot) error
	// SlotByID 按 id 查找，未找到返回 (nil, nil)
	SlotByID(ctx context.Context, id int64) (*models.ParkingSlot, error)
	// FirstAvailable 查找指定类型中 id 最小的可用车位，未找到返回 (nil, nil)
	FirstAvailable(ctx context.Context, slotType models.SlotType, requireCharger bool) (*models.ParkingSlot, error)
	// Claim 原子地将车位从 Available 置为 Occupied；车位已不可用时返回 false
	Claim(ctx context.Context, id int64) (bool, error)
	// UpdateStatus 直接写入车位状态，状态迁移合法性由调用方保证
	UpdateStatus(ctx context.Context, id int64, status models.SlotStatus) error
	// List 按过滤条件列出车位，按 id 升序
	List(ctx context.Context, filter SlotFilter) ([]models.ParkingSlot, error)
	// CountByStatus 按状态统计车位数量
	CountByStatus(ctx context.Context) (map[models.SlotStatus]int, error)
	// Count 车位总数
	Count(ctx context.Context) (int, error)
}

// SessionStore 停车会话存储
type SessionStore interface {
	// Create 创建会话
	Create(ctx context.Context, session *models.ParkingSession) error
	// ActiveByID 按 id 查找活跃会话，未找到返回 ErrNotFound
	ActiveByID(ctx context.Context, id uuid.UUID) (*models.ParkingSession, error)
	// ActiveByPlate 查找车牌的活跃会话，未找到返回 (nil, nil)
	ActiveByPlate(ctx context.Context, plate string) (*models.ParkingSession, error)
	// ActiveBySlot 查找占用指定车位的活跃会话，未找到返回 (nil, nil)
	ActiveBySlot(ctx context.Context, slotID int64) (*models.ParkingSession, error)
	// Complete 写入离场时间、费用和完成状态
	Complete(ctx context.Context, session *models.ParkingSession) error
	// List 按过滤条件列出会话，按入场时间倒序
	List(ctx context.Context, filter SessionFilter) ([]models.ParkingSession, error)
}

// Store 聚合存储入口，WithTx 在单个事务内执行回调
type Store interface {
	Vehicles() VehicleStore
	Slots() SlotStore
	Sessions() SessionStore
	WithTx(ctx context.Context, fn func(Store) error) error
}

// Package teststore 提供内存版存储实现，用于隔离的单元测试。
package teststore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/langchou/mallpark/internal/models"
	"github.com/langchou/mallpark/internal/repository"
)

// Store 内存存储；WithTx 在失败时恢复快照，模拟事务回滚
type Store struct {
	mu sync.Mutex

	vehicles map[string]*models.Vehicle
	slots    map[int64]*models.ParkingSlot
	sessions map[uuid.UUID]*models.ParkingSession

	nextVehicleID int64
	nextSlotID    int64
}

// New 创建内存存储
func New() *Store {
	return &Store{
		vehicles:      make(map[string]*models.Vehicle),
		slots:         make(map[int64]*models.ParkingSlot),
		sessions:      make(map[uuid.UUID]*models.ParkingSession),
		nextVehicleID: 1,
		nextSlotID:    1,
	}
}

// Vehicles 车辆存储
func (s *Store) Vehicles() repository.VehicleStore { return &vehicleStore{s} }

// Slots 车位存储
func (s *Store) Slots() repository.SlotStore { return &slotStore{s} }

// Sessions 会话存储
func (s *Store) Sessions() repository.SessionStore { return &sessionStore{s} }

// WithTx 串行执行回调；回调出错时恢复进入前的快照
func (s *Store) WithTx(_ context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	vehicles, slots, sessions := s.snapshot()
	nextVehicleID, nextSlotID := s.nextVehicleID, s.nextSlotID
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.vehicles, s.slots, s.sessions = vehicles, slots, sessions
		s.nextVehicleID, s.nextSlotID = nextVehicleID, nextSlotID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) snapshot() (map[string]*models.Vehicle, map[int64]*models.ParkingSlot, map[uuid.UUID]*models.ParkingSession) {
	vehicles := make(map[string]*models.Vehicle, len(s.vehicles))
	for k, v := range s.vehicles {
		c := *v
		vehicles[k] = &c
	}
	slots := make(map[int64]*models.ParkingSlot, len(s.slots))
	for k, v := range s.slots {
		c := *v
		slots[k] = &c
	}
	sessions := make(map[uuid.UUID]*models.ParkingSession, len(s.sessions))
	for k, v := range s.sessions {
		c := *v
		sessions[k] = &c
	}
	return vehicles, slots, sessions
}

type vehicleStore struct{ s *Store }

func (vs *vehicleStore) FindByPlate(_ context.Context, plate string) (*models.Vehicle, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	v, ok := vs.s.vehicles[plate]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (vs *vehicleStore) Create(_ context.Context, vehicle *models.Vehicle) error {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	if _, ok := vs.s.vehicles[vehicle.NumberPlate]; ok {
		return repository.ErrDuplicate
	}
	vehicle.ID = vs.s.nextVehicleID
	vs.s.nextVehicleID++
	c := *vehicle
	vs.s.vehicles[vehicle.NumberPlate] = &c
	return nil
}

type slotStore struct{ s *Store }

func (ss *slotStore) Create(_ context.Context, slot *models.ParkingSlot) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	for _, existing := range ss.s.slots {
		if existing.SlotNumber == slot.SlotNumber {
			return repository.ErrDuplicate
		}
	}
	slot.ID = ss.s.nextSlotID
	ss.s.nextSlotID++
	c := *slot
	ss.s.slots[slot.ID] = &c
	return nil
}

func (ss *slotStore) SlotByID(_ context.Context, id int64) (*models.ParkingSlot, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	slot, ok := ss.s.slots[id]
	if !ok {
		return nil, nil
	}
	c := *slot
	return &c, nil
}

func (ss *slotStore) FirstAvailable(_ context.Context, slotType models.SlotType, requireCharger bool) (*models.ParkingSlot, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	var best *models.ParkingSlot
	for _, slot := range ss.s.slots {
		if slot.SlotType != slotType || slot.Status != models.SlotAvailable {
			continue
		}
		if requireCharger && !slot.HasCharger {
			continue
		}
		if best == nil || slot.ID < best.ID {
			best = slot
		}
	}
	if best == nil {
		return nil, nil
	}
	c := *best
	return &c, nil
}

func (ss *slotStore) Claim(_ context.Context, id int64) (bool, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	slot, ok := ss.s.slots[id]
	if !ok || slot.Status != models.SlotAvailable {
		return false, nil
	}
	slot.Status = models.SlotOccupied
	return true, nil
}

func (ss *slotStore) UpdateStatus(_ context.Context, id int64, status models.SlotStatus) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	slot, ok := ss.s.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	slot.Status = status
	return nil
}

func (ss *slotStore) List(_ context.Context, filter repository.SlotFilter) ([]models.ParkingSlot, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	var slots []models.ParkingSlot
	for id := int64(1); id < ss.s.nextSlotID; id++ {
		slot, ok := ss.s.slots[id]
		if !ok {
			continue
		}
		if filter.SlotType != nil && slot.SlotType != *filter.SlotType {
			continue
		}
		if filter.Status != nil && slot.Status != *filter.Status {
			continue
		}
		slots = append(slots, *slot)
	}
	return slots, nil
}

func (ss *slotStore) CountByStatus(_ context.Context) (map[models.SlotStatus]int, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	counts := make(map[models.SlotStatus]int)
	for _, slot := range ss.s.slots {
		counts[slot.Status]++
	}
	return counts, nil
}

func (ss *slotStore) Count(_ context.Context) (int, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	return len(ss.s.slots), nil
}

type sessionStore struct{ s *Store }

func (ss *sessionStore) Create(_ context.Context, session *models.ParkingSession) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	if _, ok := ss.s.sessions[session.ID]; ok {
		return repository.ErrDuplicate
	}
	// 与数据库的部分唯一索引对应
	for _, existing := range ss.s.sessions {
		if existing.Status != models.SessionActive {
			continue
		}
		if existing.VehicleNumberPlate == session.VehicleNumberPlate || existing.SlotID == session.SlotID {
			return repository.ErrDuplicate
		}
	}
	c := *session
	ss.s.sessions[session.ID] = &c
	return nil
}

func (ss *sessionStore) ActiveByID(_ context.Context, id uuid.UUID) (*models.ParkingSession, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	session, ok := ss.s.sessions[id]
	if !ok || session.Status != models.SessionActive {
		return nil, repository.ErrNotFound
	}
	c := *session
	return &c, nil
}

func (ss *sessionStore) ActiveByPlate(_ context.Context, plate string) (*models.ParkingSession, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	for _, session := range ss.s.sessions {
		if session.Status == models.SessionActive && session.VehicleNumberPlate == plate {
			c := *session
			return &c, nil
		}
	}
	return nil, nil
}

func (ss *sessionStore) ActiveBySlot(_ context.Context, slotID int64) (*models.ParkingSession, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	for _, session := range ss.s.sessions {
		if session.Status == models.SessionActive && session.SlotID == slotID {
			c := *session
			return &c, nil
		}
	}
	return nil, nil
}

func (ss *sessionStore) Complete(_ context.Context, session *models.ParkingSession) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	existing, ok := ss.s.sessions[session.ID]
	if !ok || existing.Status != models.SessionActive {
		return repository.ErrNotFound
	}
	existing.ExitTime = session.ExitTime
	existing.Status = session.Status
	existing.BillingAmount = session.BillingAmount
	return nil
}

func (ss *sessionStore) List(_ context.Context, filter repository.SessionFilter) ([]models.ParkingSession, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	var sessions []models.ParkingSession
	for _, session := range ss.s.sessions {
		if filter.Status != nil && session.Status != *filter.Status {
			continue
		}
		if filter.NumberPlate != "" &&
			!strings.Contains(strings.ToLower(session.VehicleNumberPlate), strings.ToLower(filter.NumberPlate)) {
			continue
		}
		sessions = append(sessions, *session)
	}
	// 与数据库实现一致，按入场时间倒序
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].EntryTime.After(sessions[j].EntryTime)
	})
	return sessions, nil
}

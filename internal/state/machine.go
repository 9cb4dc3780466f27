package state

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/langchou/mallpark/internal/models"
)

// 车位事件常量
const (
	EventOccupy      = "occupy"
	EventRelease     = "release"
	EventMaintenance = "start_maintenance"
	EventReopen      = "reopen"
)

// 会话事件常量
const (
	EventComplete = "complete"
)

// SlotMachine 车位状态机，集中定义合法的状态迁移
type SlotMachine struct {
	fsm *fsm.FSM
}

// NewSlotMachine 以当前状态创建车位状态机
func NewSlotMachine(current models.SlotStatus) *SlotMachine {
	return &SlotMachine{
		fsm: fsm.NewFSM(
			string(current),
			fsm.Events{
				// 分配引擎占用车位；维护中的车位也允许人工直接置为占用
				{Name: EventOccupy, Src: []string{string(models.SlotAvailable), string(models.SlotMaintenance)}, Dst: string(models.SlotOccupied)},

				// 离场释放车位
				{Name: EventRelease, Src: []string{string(models.SlotOccupied)}, Dst: string(models.SlotAvailable)},

				// 任意状态都可以进入维护（包括被占用的车位）
				{Name: EventMaintenance, Src: []string{string(models.SlotAvailable), string(models.SlotOccupied)}, Dst: string(models.SlotMaintenance)},

				// 维护结束重新开放
				{Name: EventReopen, Src: []string{string(models.SlotMaintenance)}, Dst: string(models.SlotAvailable)},
			},
			fsm.Callbacks{},
		),
	}
}

// Current 获取当前状态
func (m *SlotMachine) Current() models.SlotStatus {
	return models.SlotStatus(m.fsm.Current())
}

// Occupy 占用车位
func (m *SlotMachine) Occupy() error {
	return m.trigger(EventOccupy)
}

// Release 释放车位
func (m *SlotMachine) Release() error {
	return m.trigger(EventRelease)
}

// Transition 迁移到目标状态，用于人工状态更新；目标与当前相同时为空操作
func (m *SlotMachine) Transition(target models.SlotStatus) error {
	if m.Current() == target {
		return nil
	}

	var event string
	switch target {
	case models.SlotOccupied:
		event = EventOccupy
	case models.SlotMaintenance:
		event = EventMaintenance
	case models.SlotAvailable:
		if m.Current() == models.SlotMaintenance {
			event = EventReopen
		} else {
			event = EventRelease
		}
	default:
		return fmt.Errorf("unknown slot status %q", target)
	}

	return m.trigger(event)
}

func (m *SlotMachine) trigger(event string) error {
	if err := m.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("trigger event %s: %w", event, err)
	}
	return nil
}

// SessionMachine 停车会话状态机；Completed 为终态
type SessionMachine struct {
	fsm *fsm.FSM
}

// NewSessionMachine 以当前状态创建会话状态机
func NewSessionMachine(current models.SessionStatus) *SessionMachine {
	return &SessionMachine{
		fsm: fsm.NewFSM(
			string(current),
			fsm.Events{
				{Name: EventComplete, Src: []string{string(models.SessionActive)}, Dst: string(models.SessionCompleted)},
			},
			fsm.Callbacks{},
		),
	}
}

// Current 获取当前状态
func (m *SessionMachine) Current() models.SessionStatus {
	return models.SessionStatus(m.fsm.Current())
}

// Complete 结束会话
func (m *SessionMachine) Complete() error {
	if err := m.fsm.Event(context.Background(), EventComplete); err != nil {
		return fmt.Errorf("trigger event %s: %w", EventComplete, err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/langchou/mallpark/internal/models"
)

// SlotRepository 车位数据仓库
type SlotRepository struct {
	q querier
}

const slotColumns = `id, slot_number, slot_type, status, has_charger`

func scanSlot(row pgx.Row) (*models.ParkingSlot, error) {
	slot := &models.ParkingSlot{}
	err := row.Scan(&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.HasCharger)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// Create 注册车位
func (r *SlotRepository) Create(ctx context.Context, slot *models.ParkingSlot) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO parking_slots (slot_number, slot_type, status, has_charger)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		slot.SlotNumber, slot.SlotType, slot.Status, slot.HasCharger,
	).Scan(&slot.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

// SlotByID 按 id 查找车位
func (r *SlotRepository) SlotByID(ctx context.Context, id int64) (*models.ParkingSlot, error) {
	slot, err := scanSlot(r.q.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM parking_slots WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slot by id: %w", err)
	}
	return slot, nil
}

// FirstAvailable 查找指定类型中 id 最小的可用车位
func (r *SlotRepository) FirstAvailable(ctx context.Context, slotType models.SlotType, requireCharger bool) (*models.ParkingSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots
		WHERE slot_type = $1 AND status = $2`
	args := []any{slotType, models.SlotAvailable}
	if requireCharger {
		query += ` AND has_charger = true`
	}
	query += ` ORDER BY id LIMIT 1`

	slot, err := scanSlot(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find available slot: %w", err)
	}
	return slot, nil
}

// Claim 原子占用车位，仅当状态仍为 Available 时生效
func (r *SlotRepository) Claim(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE parking_slots SET status = $1 WHERE id = $2 AND status = $3`,
		models.SlotOccupied, id, models.SlotAvailable,
	)
	if err != nil {
		return false, fmt.Errorf("claim slot: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateStatus 写入车位状态
func (r *SlotRepository) UpdateStatus(ctx context.Context, id int64, status models.SlotStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE parking_slots SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update slot status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List 按过滤条件列出车位
func (r *SlotRepository) List(ctx context.Context, filter SlotFilter) ([]models.ParkingSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots WHERE 1=1`
	args := []any{}
	if filter.SlotType != nil {
		args = append(args, *filter.SlotType)
		query += fmt.Sprintf(` AND slot_type = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []models.ParkingSlot
	for rows.Next() {
		slot := models.ParkingSlot{}
		if err := rows.Scan(&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.HasCharger); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// CountByStatus 按状态统计车位数量
func (r *SlotRepository) CountByStatus(ctx context.Context) (map[models.SlotStatus]int, error) {
	rows, err := r.q.Query(ctx,
		`SELECT status, COUNT(*) FROM parking_slots GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count slots by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.SlotStatus]int)
	for rows.Next() {
		var status models.SlotStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan slot count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Count 车位总数
func (r *SlotRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM parking_slots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return count, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/langchou/mallpark/internal/models"
)

// SessionRepository 停车会话数据仓库
type SessionRepository struct {
	q querier
}

const sessionColumns = `id, vehicle_number_plate, slot_id, entry_time, exit_time, status, billing_type, billing_amount_cents`

func scanSession(row pgx.Row) (*models.ParkingSession, error) {
	session := &models.ParkingSession{}
	var cents *int64
	err := row.Scan(
		&session.ID,
		&session.VehicleNumberPlate,
		&session.SlotID,
		&session.EntryTime,
		&session.ExitTime,
		&session.Status,
		&session.BillingType,
		&cents,
	)
	if err != nil {
		return nil, err
	}
	if cents != nil {
		amount := models.Amount(*cents)
		session.BillingAmount = &amount
	}
	return session, nil
}

func amountCents(a *models.Amount) *int64 {
	if a == nil {
		return nil
	}
	cents := a.Cents()
	return &cents
}

// Create 创建会话
func (r *SessionRepository) Create(ctx context.Context, session *models.ParkingSession) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO parking_sessions (id, vehicle_number_plate, slot_id, entry_time, exit_time, status, billing_type, billing_amount_cents)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.ID,
		session.VehicleNumberPlate,
		session.SlotID,
		session.EntryTime,
		session.ExitTime,
		session.Status,
		session.BillingType,
		amountCents(session.BillingAmount),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// ActiveByID 按 id 查找活跃会话
func (r *SessionRepository) ActiveByID(ctx context.Context, id uuid.UUID) (*models.ParkingSession, error) {
	session, err := scanSession(r.q.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM parking_sessions WHERE id = $1 AND status = $2`,
		id, models.SessionActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active session by id: %w", err)
	}
	return session, nil
}

// ActiveByPlate 查找车牌的活跃会话
func (r *SessionRepository) ActiveByPlate(ctx context.Context, plate string) (*models.ParkingSession, error) {
	session, err := scanSession(r.q.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM parking_sessions WHERE vehicle_number_plate = $1 AND status = $2`,
		plate, models.SessionActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active session by plate: %w", err)
	}
	return session, nil
}

// ActiveBySlot 查找占用指定车位的活跃会话
func (r *SessionRepository) ActiveBySlot(ctx context.Context, slotID int64) (*models.ParkingSession, error) {
	session, err := scanSession(r.q.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM parking_sessions WHERE slot_id = $1 AND status = $2`,
		slotID, models.SessionActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active session by slot: %w", err)
	}
	return session, nil
}

// Complete 写入离场信息并完成会话
func (r *SessionRepository) Complete(ctx context.Context, session *models.ParkingSession) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE parking_sessions
		 SET exit_time = $1, status = $2, billing_amount_cents = $3
		 WHERE id = $4 AND status = $5`,
		session.ExitTime,
		session.Status,
		amountCents(session.BillingAmount),
		session.ID,
		models.SessionActive,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List 按过滤条件列出会话
func (r *SessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.ParkingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM parking_sessions WHERE 1=1`
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.NumberPlate != "" {
		args = append(args, "%"+filter.NumberPlate+"%")
		query += fmt.Sprintf(` AND vehicle_number_plate ILIKE $%d`, len(args))
	}
	query += ` ORDER BY entry_time DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ParkingSession
	for rows.Next() {
		session := models.ParkingSession{}
		var cents *int64
		err := rows.Scan(
			&session.ID,
			&session.VehicleNumberPlate,
			&session.SlotID,
			&session.EntryTime,
			&session.ExitTime,
			&session.Status,
			&session.BillingType,
			&cents,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if cents != nil {
			amount := models.Amount(*cents)
			session.BillingAmount = &amount
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

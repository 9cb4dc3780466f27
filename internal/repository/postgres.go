package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresStore 基于 pgx 的聚合存储
type PostgresStore struct {
	db       *DB
	q        querier
	vehicles *VehicleRepository
	slots    *SlotRepository
	sessions *SessionRepository
}

// NewStore 在连接池上创建存储
func NewStore(db *DB) *PostgresStore {
	return newStore(db, db.Pool)
}

func newStore(db *DB, q querier) *PostgresStore {
	return &PostgresStore{
		db:       db,
		q:        q,
		vehicles: &VehicleRepository{q: q},
		slots:    &SlotRepository{q: q},
		sessions: &SessionRepository{q: q},
	}
}

// Vehicles 车辆存储
func (s *PostgresStore) Vehicles() VehicleStore {
	return s.vehicles
}

// Slots 车位存储
func (s *PostgresStore) Slots() SlotStore {
	return s.slots
}

// Sessions 会话存储
func (s *PostgresStore) Sessions() SessionStore {
	return s.sessions
}

// WithTx 在单个事务内执行回调，回调出错时回滚
func (s *PostgresStore) WithTx(ctx context.Context, fn func(Store) error) error {
	// 已在事务内时直接复用
	if _, ok := s.q.(pgx.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newStore(s.db, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
